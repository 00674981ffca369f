package node

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/core"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/store/database"
	"github.com/clawnch/ledger/store/database/backend"
)

// LoadAccounts reads the protocol account ids from the config. Ids left empty
// are derived from the mint.
func LoadAccounts() (types.Accounts, error) {
	mint, err := accountFromConfig(common.CfgProtocolMintID)
	if err != nil {
		return types.Accounts{}, err
	}
	if mint.IsZero() {
		return types.Accounts{}, errors.Errorf("%v must be set", common.CfgProtocolMintID)
	}
	accounts := types.DefaultAccounts(mint)

	overrides := []struct {
		key string
		id  *types.AccountID
	}{
		{common.CfgProtocolConfigID, &accounts.Config},
		{common.CfgProtocolFeeVaultID, &accounts.FeeVault},
		{common.CfgProtocolTreasuryID, &accounts.Treasury},
		{common.CfgProtocolStakingPoolID, &accounts.StakingPool},
	}
	for _, o := range overrides {
		id, err := accountFromConfig(o.key)
		if err != nil {
			return types.Accounts{}, err
		}
		if !id.IsZero() {
			*o.id = id
		}
	}
	return accounts, nil
}

// LoadAuthorizer builds the authorizer from the configured caller allowlist.
func LoadAuthorizer() (core.Authorizer, error) {
	raw := strings.FieldsFunc(viper.GetString(common.CfgProtocolAuthorizedCallers), func(c rune) bool {
		return c == ','
	})
	if len(raw) == 0 {
		return core.AllowAll, nil
	}
	callers := make([]types.AccountID, 0, len(raw))
	for _, s := range raw {
		id, err := types.HexToAccountID(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %v", common.CfgProtocolAuthorizedCallers)
		}
		callers = append(callers, id)
	}
	return core.NewAllowlist(callers...), nil
}

// OpenDatabase opens the configured storage backend under dataDir.
func OpenDatabase(dataDir string) (database.Database, error) {
	return backend.OpenDatabase(backend.Options{
		Backend:   viper.GetString(common.CfgStorageBackend),
		DataDir:   dataDir,
		CacheSize: viper.GetInt(common.CfgStorageCacheSize),
		LDBCache:  viper.GetInt(common.CfgStorageLevelDBCache),
		LDBFiles:  viper.GetInt(common.CfgStorageLevelDBHandles),
	})
}

func accountFromConfig(key string) (types.AccountID, error) {
	s := strings.TrimSpace(viper.GetString(key))
	if s == "" {
		return types.AccountID{}, nil
	}
	id, err := types.HexToAccountID(s)
	if err != nil {
		return types.AccountID{}, errors.Wrapf(err, "invalid %v", key)
	}
	return id, nil
}
