package ledger

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawnch/ledger/core"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
	"github.com/clawnch/ledger/store/database/backend"
)

const year = time.Duration(types.SecondsPerYear) * time.Second

func TestLedgerSetup(t *testing.T) {
	assert := assert.New(t)

	_, err := NewLedger(Params{Accounts: types.TestAccounts(), Clock: core.NewSystemClock()})
	assert.NotNil(err)

	_, err = NewLedger(Params{DB: backend.NewMemDatabase(), Accounts: types.TestAccounts()})
	assert.NotNil(err)

	_, err = NewLedger(Params{DB: backend.NewMemDatabase(), Clock: core.NewSystemClock()})
	assert.NotNil(err)

	ledger, err := NewLedger(Params{DB: backend.NewMemDatabase(), Accounts: types.TestAccounts(), Clock: core.NewSystemClock()})
	assert.Nil(err)
	assert.Equal(types.TestAccounts(), ledger.Accounts())

	_, err = ledger.GetFeeConfig()
	assert.True(errors.Is(err, result.ErrConfigNotFound))
	_, err = ledger.GetFeeVault()
	assert.True(errors.Is(err, result.ErrConfigNotFound))
	_, err = ledger.GetTreasury()
	assert.True(errors.Is(err, result.ErrConfigNotFound))
}

func TestLedgerConfig(t *testing.T) {
	assert := assert.New(t)
	tl := newTestLedger()

	fc, err := tl.InitializeConfig(tl.authority, 1000, 2000, 3500, 3500)
	assert.Nil(err)
	assert.Equal(types.DefaultFeeConfig(tl.authority), fc)

	_, err = tl.UpdateConfig(tl.authority, 1000, 2000, 3500, 3000)
	assert.True(errors.Is(err, result.ErrInvalidFeeConfig))

	fc, err = tl.UpdateConfig(tl.authority, 2500, 2500, 2500, 2500)
	assert.Nil(err)
	assert.Equal(uint16(2500), fc.StakingBps)

	fv, err := tl.GetFeeVault()
	assert.Nil(err)
	assert.Equal(tl.authority, fv.Authority)
	assert.Equal(tl.Accounts().FeeVault, fv.ID)

	tr, err := tl.GetTreasury()
	assert.Nil(err)
	assert.Equal(tl.Accounts().Mint, tr.Mint)

	newAuthority := types.TestAccountID("new_authority")
	transferred, err := tl.TransferAuthority(tl.authority, newAuthority)
	assert.Nil(err)
	assert.Equal(newAuthority, transferred.NewAuthority)
	fc, err = tl.GetFeeConfig()
	assert.Nil(err)
	assert.Equal(newAuthority, fc.Authority)

	events := tl.drain()
	assert.Equal(3, len(events))
	assert.Equal(types.EventConfigInitialized, events[0].EventName())
	assert.Equal(types.EventConfigUpdated, events[1].EventName())
	assert.Equal(types.EventAuthorityChanged, events[2].EventName())
}

func TestLedgerEventsFollowCommit(t *testing.T) {
	assert := assert.New(t)
	tl := newTestLedger()
	tl.initDefaultConfig()
	tl.drain()

	creator := types.TestAccountID("creator")

	_, err := tl.DistributeFees(0, creator)
	assert.True(errors.Is(err, result.ErrInvalidAmount))
	_, err = tl.Unstake(types.TestAccountID("alice"))
	assert.True(errors.Is(err, result.ErrNothingStaked))
	assert.Equal(0, len(tl.drain()))

	res, err := tl.DistributeFees(10000, creator)
	assert.Nil(err)
	events := tl.drain()
	assert.Equal(1, len(events))
	assert.Equal(res, events[0])

	expected := `
# HELP clawnch_ledger_operations_total Ledger operations by name and result code.
# TYPE clawnch_ledger_operations_total counter
clawnch_ledger_operations_total{operation="distribute_fees",result="invalid_amount"} 1
clawnch_ledger_operations_total{operation="distribute_fees",result="ok"} 1
clawnch_ledger_operations_total{operation="initialize_config",result="ok"} 1
clawnch_ledger_operations_total{operation="unstake",result="nothing_staked"} 1
`
	err = testutil.GatherAndCompare(tl.metrics.Registry(), strings.NewReader(expected), "clawnch_ledger_operations_total")
	assert.Nil(err)
}

func TestLedgerDistributeFeesFrom(t *testing.T) {
	assert := assert.New(t)
	tl := newTestLedger()
	tl.initDefaultConfig()

	payer := types.TestAccountID("pool")
	creator := types.TestAccountID("creator")
	_, err := tl.Deposit(payer, 1000)
	assert.Nil(err)

	res, err := tl.DistributeFeesFrom(payer, creator, 999)
	assert.Nil(err)
	assert.Equal(uint64(3), res.Dust)
	assert.Equal(payer, res.Payer)

	balance, err := tl.GetBalance(payer)
	assert.Nil(err)
	assert.Equal(uint64(4), balance)

	balance, err = tl.GetBalance(creator)
	assert.Nil(err)
	assert.Equal(uint64(199), balance)
}

func TestLedgerStakingQueries(t *testing.T) {
	require := require.New(t)
	tl := newTestLedger()
	tl.initDefaultConfig()

	alice := types.TestAccountID("alice")
	bob := types.TestAccountID("bob")
	_, err := tl.Deposit(alice, 1000)
	require.Nil(err)
	_, err = tl.Deposit(bob, 3000)
	require.Nil(err)
	_, err = tl.Deposit(tl.Accounts().Treasury, 100000)
	require.Nil(err)

	vault, err := tl.GetStakingVault(alice)
	require.Nil(err)
	require.Equal(uint64(0), uint64(vault.StakedAmount))
	require.Equal(types.StakingVaultID(alice), vault.Vault)

	_, err = tl.Stake(alice, 1000)
	require.Nil(err)
	_, err = tl.Stake(bob, 3000)
	require.Nil(err)

	total, err := tl.TotalStaked()
	require.Nil(err)
	require.Equal(uint64(4000), total)

	vaults, err := tl.ListStakingVaults()
	require.Nil(err)
	require.Equal(2, len(vaults))

	tl.clock.Advance(year / 4)
	pending, err := tl.PendingReward(alice)
	require.Nil(err)
	require.Equal(uint64(250), pending)
	pending, err = tl.PendingReward(bob)
	require.Nil(err)
	require.Equal(uint64(750), pending)

	unstaked, err := tl.Unstake(alice)
	require.Nil(err)
	require.Equal(uint64(250), unstaked.Reward)
	require.Equal(uint64(1250), unstaked.Payout())

	total, err = tl.TotalStaked()
	require.Nil(err)
	require.Equal(uint64(3000), total)

	pending, err = tl.PendingReward(alice)
	require.Nil(err)
	require.Equal(uint64(0), pending)

	treasury, err := tl.GetTreasury()
	require.Nil(err)
	require.Equal(uint64(100000+4000-1250), uint64(treasury.Balance))
}

func TestLedgerBuybackAndWithdraw(t *testing.T) {
	assert := assert.New(t)
	tl := newTestLedger()
	tl.initDefaultConfig()

	recipient := types.TestAccountID("amm")
	_, err := tl.DistributeFees(100000, types.TestAccountID("creator"))
	assert.Nil(err)

	_, err = tl.ExecuteBuyback(tl.authority, recipient, 35001)
	assert.True(errors.Is(err, result.ErrInsufficientTreasuryBalance))

	bought, err := tl.ExecuteBuyback(tl.authority, recipient, 35000)
	assert.Nil(err)
	assert.Equal(uint64(35000), bought.Amount)

	withdrawn, err := tl.WithdrawFees(tl.authority, recipient, 10000)
	assert.Nil(err)
	assert.Equal(uint64(10000), withdrawn.Amount)

	balance, err := tl.GetBalance(recipient)
	assert.Nil(err)
	assert.Equal(uint64(45000), balance)

	fv, err := tl.GetFeeVault()
	assert.Nil(err)
	assert.Equal(uint64(0), uint64(fv.Balance))
}

func TestLedgerConcurrentOperations(t *testing.T) {
	assert := assert.New(t)
	tl := newTestLedger()
	tl.initDefaultConfig()

	const numUsers = 32
	const fee = uint64(1000)

	var wg sync.WaitGroup
	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := types.TestAccountID(fmt.Sprintf("user%v", i))
			if _, err := tl.Deposit(user, 500); err != nil {
				t.Error(err)
				return
			}
			if _, err := tl.Stake(user, 500); err != nil {
				t.Error(err)
				return
			}
			if _, err := tl.DistributeFees(fee, types.TestAccountID("creator")); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	total, err := tl.TotalStaked()
	assert.Nil(err)
	assert.Equal(uint64(numUsers*500), total)

	treasury, err := tl.GetTreasury()
	assert.Nil(err)
	assert.Equal(uint64(numUsers*500+numUsers*350), uint64(treasury.Balance))

	creator, err := tl.GetBalance(types.TestAccountID("creator"))
	assert.Nil(err)
	assert.Equal(uint64(numUsers*200), creator)
}

func TestLedgerPersistence(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	db, err := backend.NewLDBDatabase(dir, 16, 16)
	require.Nil(err)
	tl := newTestLedgerWithDB(db)
	tl.initDefaultConfig()

	alice := types.TestAccountID("alice")
	_, err = tl.Deposit(alice, 100)
	require.Nil(err)
	_, err = tl.Stake(alice, 60)
	require.Nil(err)
	db.Close()

	db, err = backend.NewLDBDatabase(dir, 16, 16)
	require.Nil(err)
	defer db.Close()
	tl = newTestLedgerWithDB(db)

	fc, err := tl.GetFeeConfig()
	require.Nil(err)
	require.Equal(types.DefaultFeeConfig(tl.authority), fc)

	balance, err := tl.GetBalance(alice)
	require.Nil(err)
	require.Equal(uint64(40), balance)

	vault, err := tl.GetStakingVault(alice)
	require.Nil(err)
	require.Equal(uint64(60), uint64(vault.StakedAmount))
	require.Equal(testGenesisTime.Unix(), vault.LastUpdate)

	total, err := tl.TotalStaked()
	require.Nil(err)
	require.Equal(uint64(60), total)
}
