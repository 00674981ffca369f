package state

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
	"github.com/clawnch/ledger/store/database/backend"
)

func TestStoreViewBasics(t *testing.T) {
	assert := assert.New(t)

	db := backend.NewMemDatabase()
	sv := NewStoreView(db)

	k1, v1 := []byte("key1"), []byte("value1")
	k2, v2 := []byte("key2"), []byte("value2")

	sv.Set(k1, v1)
	sv.Set(k2, v2)

	v, err := sv.Get(k1)
	assert.Nil(err)
	assert.Equal(v1, v)

	// Staged writes are invisible to the database until saved.
	has, _ := db.Has(k1)
	assert.False(has)

	assert.Nil(sv.Save())
	assert.False(sv.Dirty())
	v, err = db.Get(k2)
	assert.Nil(err)
	assert.Equal(v2, v)

	sv.Delete(k1)
	v, err = sv.Get(k1)
	assert.Nil(err)
	assert.Nil(v)
	assert.Nil(sv.Save())
	has, _ = db.Has(k1)
	assert.False(has)

	v, err = sv.Get([]byte("missing"))
	assert.Nil(err)
	assert.Nil(v)
}

func TestStoreViewRecords(t *testing.T) {
	require := require.New(t)

	accounts := types.TestAccounts()
	authority := types.TestAccountID("authority")
	sv := NewStoreView(backend.NewMemDatabase())

	fc, err := sv.GetFeeConfig(accounts.Config)
	require.Nil(err)
	require.Nil(fc)

	require.Nil(sv.SetFeeConfig(accounts.Config, types.DefaultFeeConfig(authority)))
	fc, err = sv.GetFeeConfig(accounts.Config)
	require.Nil(err)
	require.Equal(types.DefaultFeeConfig(authority), fc)

	err = sv.SetFeeConfig(accounts.Config, &types.FeeConfig{ProtocolBps: 1})
	require.True(errors.Is(err, result.ErrInvalidFeeConfig))

	require.Nil(sv.SetFeeVault(accounts.FeeVault, &types.FeeVault{Authority: authority}))
	fv, err := sv.GetFeeVault(accounts.FeeVault)
	require.Nil(err)
	require.Equal(authority, fv.Authority)

	require.Nil(sv.SetTreasury(accounts.Treasury, &types.TokenTreasury{Authority: authority, Mint: accounts.Mint}))
	tr, err := sv.GetTreasury(accounts.Treasury)
	require.Nil(err)
	require.Equal(accounts.Mint, tr.Mint)

	user := types.TestAccountID("user")
	vault, err := sv.GetStakingVault(user)
	require.Nil(err)
	require.Nil(vault)
	require.Nil(sv.SetStakingVault(user, &types.StakingVault{Owner: user, StakedAmount: 10, LastUpdate: 99}))
	vault, err = sv.GetStakingVault(user)
	require.Nil(err)
	require.Equal(uint64(10), vault.StakedAmount)
	require.Equal(int64(99), vault.LastUpdate)
}

func TestStoreViewCreditDebit(t *testing.T) {
	assert := assert.New(t)

	id := types.TestAccountID("alice")
	sv := NewStoreView(backend.NewMemDatabase())

	balance, err := sv.GetBalance(id)
	assert.Nil(err)
	assert.Equal(uint64(0), balance)

	balance, err = sv.Credit(id, 100)
	assert.Nil(err)
	assert.Equal(uint64(100), balance)

	balance, err = sv.Debit(id, 40)
	assert.Nil(err)
	assert.Equal(uint64(60), balance)

	_, err = sv.Debit(id, 61)
	assert.True(errors.Is(err, result.ErrInsufficientBalance))
	balance, _ = sv.GetBalance(id)
	assert.Equal(uint64(60), balance)

	assert.Nil(sv.SetBalance(id, math.MaxUint64-1))
	_, err = sv.Credit(id, 2)
	assert.True(errors.Is(err, result.ErrOverflow))
	balance, _ = sv.GetBalance(id)
	assert.Equal(uint64(math.MaxUint64-1), balance)

	balance, err = sv.Debit(id, math.MaxUint64-1)
	assert.Nil(err)
	assert.Equal(uint64(0), balance)
}

func TestStoreViewTotalStaked(t *testing.T) {
	assert := assert.New(t)

	db := backend.NewMemDatabase()
	sv := NewStoreView(db)

	total, err := sv.GetTotalStaked()
	assert.Nil(err)
	assert.Equal(uint64(0), total)

	assert.Nil(sv.SetTotalStaked(250))
	total, err = sv.GetTotalStaked()
	assert.Nil(err)
	assert.Equal(uint64(250), total)

	// The total is not mistaken for a staking vault.
	vaults, err := sv.ListStakingVaults()
	assert.Nil(err)
	assert.Equal(0, len(vaults))

	assert.Nil(sv.Save())
	total, err = NewStoreView(db).GetTotalStaked()
	assert.Nil(err)
	assert.Equal(uint64(250), total)
}

func TestStoreViewListStakingVaults(t *testing.T) {
	require := require.New(t)

	db := backend.NewMemDatabase()
	alice, bob, carol := types.TestAccountID("alice"), types.TestAccountID("bob"), types.TestAccountID("carol")

	sv := NewStoreView(db)
	require.Nil(sv.SetStakingVault(alice, &types.StakingVault{Owner: alice, StakedAmount: 1}))
	require.Nil(sv.SetStakingVault(bob, &types.StakingVault{Owner: bob, StakedAmount: 2}))
	require.Nil(sv.Save())

	sv = NewStoreView(db)
	require.Nil(sv.SetStakingVault(bob, &types.StakingVault{Owner: bob, StakedAmount: 20}))
	require.Nil(sv.SetStakingVault(carol, &types.StakingVault{Owner: carol, StakedAmount: 3}))
	sv.Delete(StakingVaultKey(alice))
	require.Nil(sv.SetBalance(alice, 5)) // not a vault

	vaults, err := sv.ListStakingVaults()
	require.Nil(err)
	require.Equal(2, len(vaults))
	amounts := map[types.AccountID]uint64{}
	for _, v := range vaults {
		amounts[v.Owner] = v.StakedAmount
	}
	require.Equal(map[types.AccountID]uint64{bob: 20, carol: 3}, amounts)
}
