package node

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/core"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/store/database/backend"
	"github.com/clawnch/ledger/store/kvstore"
)

func newTestParams() *Params {
	return &Params{
		DB:       backend.NewMemDatabase(),
		Accounts: types.TestAccounts(),
		Clock:    core.NewSystemClock(),
	}
}

func TestNodeForwardsEvents(t *testing.T) {
	require := require.New(t)

	viper.Set(common.CfgRPCEnabled, false)
	defer viper.Set(common.CfgRPCEnabled, true)

	n, err := NewNode(newTestParams())
	require.Nil(err)
	require.Nil(n.RPC)

	recorder := core.NewChannelSink(16)
	n.eventLog = recorder

	require.Nil(n.Start(context.Background()))

	authority := types.TestAccountID("authority")
	_, err = n.Ledger.InitializeConfig(authority, 1000, 2000, 3500, 3500)
	require.Nil(err)
	_, err = n.Ledger.Deposit(types.TestAccountID("alice"), 10)
	require.Nil(err)

	for _, name := range []string{types.EventConfigInitialized, types.EventDeposited} {
		select {
		case event := <-recorder.Events():
			require.Equal(name, event.EventName())
		case <-time.After(5 * time.Second):
			t.Fatalf("event %v was not forwarded", name)
		}
	}

	n.Stop()
	require.Nil(n.Wait())
}

func TestNodeSchema(t *testing.T) {
	assert := assert.New(t)

	viper.Set(common.CfgRPCEnabled, false)
	defer viper.Set(common.CfgRPCEnabled, true)

	params := newTestParams()
	_, err := NewNode(params)
	assert.Nil(err)

	// Reopening the same store is fine.
	_, err = NewNode(params)
	assert.Nil(err)

	kv := kvstore.NewKVStore(params.DB)
	assert.Nil(kv.Put(schemaKey, SchemaVersion+1))
	_, err = NewNode(params)
	assert.NotNil(err)
}

func TestLoadAccounts(t *testing.T) {
	assert := assert.New(t)
	defer viper.Set(common.CfgProtocolMintID, "")
	defer viper.Set(common.CfgProtocolStakingPoolID, "")

	viper.Set(common.CfgProtocolMintID, "")
	_, err := LoadAccounts()
	assert.NotNil(err)

	mint := types.TestAccountID("mint")
	viper.Set(common.CfgProtocolMintID, mint.Hex())
	accounts, err := LoadAccounts()
	assert.Nil(err)
	assert.Equal(types.DefaultAccounts(mint), accounts)
	assert.Equal(accounts.Treasury, accounts.StakingPoolOrTreasury())

	pool := types.TestAccountID("staking_pool")
	viper.Set(common.CfgProtocolStakingPoolID, pool.Hex())
	accounts, err = LoadAccounts()
	assert.Nil(err)
	assert.Equal(pool, accounts.StakingPool)

	viper.Set(common.CfgProtocolStakingPoolID, "0xzz")
	_, err = LoadAccounts()
	assert.NotNil(err)
}

func TestLoadAuthorizer(t *testing.T) {
	assert := assert.New(t)
	defer viper.Set(common.CfgProtocolAuthorizedCallers, "")

	alice := types.TestAccountID("alice")
	bob := types.TestAccountID("bob")
	resource := types.TestAccountID("config")

	viper.Set(common.CfgProtocolAuthorizedCallers, "")
	authorizer, err := LoadAuthorizer()
	assert.Nil(err)
	assert.True(authorizer.IsAuthorized(bob, resource))

	viper.Set(common.CfgProtocolAuthorizedCallers, alice.Hex()+", ")
	authorizer, err = LoadAuthorizer()
	assert.Nil(err)
	assert.True(authorizer.IsAuthorized(alice, resource))
	assert.False(authorizer.IsAuthorized(bob, resource))

	viper.Set(common.CfgProtocolAuthorizedCallers, "nothex")
	_, err = LoadAuthorizer()
	assert.NotNil(err)
}
