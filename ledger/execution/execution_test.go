package execution

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawnch/ledger/core"
	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
	"github.com/clawnch/ledger/store/database/backend"
)

const year = time.Duration(types.SecondsPerYear) * time.Second

func TestInitConfig(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()

	_, err := et.exec(&types.InitConfigTx{Caller: et.authority, ProtocolBps: 1000, CreatorBps: 2000, BuybackBps: 3500, StakingBps: 3000})
	assert.True(errors.Is(err, result.ErrInvalidFeeConfig))

	event, err := et.exec(&types.InitConfigTx{Caller: et.authority, ProtocolBps: 1000, CreatorBps: 2000, BuybackBps: 3500, StakingBps: 3500})
	assert.Nil(err)
	assert.Equal(&types.ConfigInitialized{
		Authority:      et.authority,
		ProtocolFeeBps: 1000,
		CreatorFeeBps:  2000,
		BuybackFeeBps:  3500,
		StakingFeeBps:  3500,
	}, event)

	_, err = et.exec(&types.InitConfigTx{Caller: et.alice, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2500})
	assert.True(errors.Is(err, result.ErrConfigExists))

	et.state.View(func(view *st.StoreView) error {
		fc, err := view.GetFeeConfig(et.accounts.Config)
		assert.Nil(err)
		assert.Equal(types.DefaultFeeConfig(et.authority), fc)

		fv, err := view.GetFeeVault(et.accounts.FeeVault)
		assert.Nil(err)
		assert.Equal(et.authority, fv.Authority)

		tr, err := view.GetTreasury(et.accounts.Treasury)
		assert.Nil(err)
		assert.Equal(et.authority, tr.Authority)
		assert.Equal(et.accounts.Mint, tr.Mint)
		return nil
	})
}

func TestUpdateConfig(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()

	_, err := et.exec(&types.UpdateConfigTx{Caller: et.authority, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2500})
	assert.True(errors.Is(err, result.ErrConfigNotFound))

	et.initConfig()

	_, err = et.exec(&types.UpdateConfigTx{Caller: et.alice, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2500})
	assert.True(errors.Is(err, result.ErrUnauthorized))

	_, err = et.exec(&types.UpdateConfigTx{Caller: et.authority, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2499})
	assert.True(errors.Is(err, result.ErrInvalidFeeConfig))

	event, err := et.exec(&types.UpdateConfigTx{Caller: et.authority, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2500})
	assert.Nil(err)
	assert.Equal(types.EventConfigUpdated, event.EventName())

	et.state.View(func(view *st.StoreView) error {
		fc, _ := view.GetFeeConfig(et.accounts.Config)
		assert.Equal(uint16(2500), fc.ProtocolBps)
		assert.Equal(et.authority, fc.Authority)
		return nil
	})
}

func TestUpdateConfigRejectedByAuthorizer(t *testing.T) {
	assert := assert.New(t)

	et := newExecTestWithDB(backend.NewMemDatabase(), core.DenyAll)
	et.initConfig()

	_, err := et.exec(&types.UpdateConfigTx{Caller: et.authority, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2500})
	assert.True(errors.Is(err, result.ErrUnauthorized))
}

func TestTransferAuthority(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()

	_, err := et.exec(&types.TransferAuthorityTx{Caller: et.alice, NewAuthority: et.alice})
	assert.True(errors.Is(err, result.ErrUnauthorized))

	_, err = et.exec(&types.TransferAuthorityTx{Caller: et.authority})
	assert.True(errors.Is(err, result.ErrInvalidAuthority))

	event, err := et.exec(&types.TransferAuthorityTx{Caller: et.authority, NewAuthority: et.alice})
	assert.Nil(err)
	assert.Equal(&types.AuthorityTransferred{PreviousAuthority: et.authority, NewAuthority: et.alice}, event)

	// The old authority lost every privilege, the new one holds them all.
	_, err = et.exec(&types.UpdateConfigTx{Caller: et.authority, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2500})
	assert.True(errors.Is(err, result.ErrUnauthorized))
	_, err = et.exec(&types.UpdateConfigTx{Caller: et.alice, ProtocolBps: 2500, CreatorBps: 2500, BuybackBps: 2500, StakingBps: 2500})
	assert.Nil(err)

	et.deposit(et.accounts.Treasury, 10)
	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Recipient: et.bob, Amount: 1})
	assert.True(errors.Is(err, result.ErrUnauthorized))
	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.alice, Recipient: et.bob, Amount: 1})
	assert.Nil(err)
}

func TestDistributeFees(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()

	_, err := et.exec(&types.DistributeFeesTx{FeeAmount: 100, Creator: et.creator})
	assert.True(errors.Is(err, result.ErrConfigNotFound))

	et.initConfig()

	_, err = et.exec(&types.DistributeFeesTx{FeeAmount: 0, Creator: et.creator})
	assert.True(errors.Is(err, result.ErrInvalidAmount))

	event, err := et.exec(&types.DistributeFeesTx{FeeAmount: 10000, Creator: et.creator})
	assert.Nil(err)
	res := event.(*types.FeesDistributed)
	assert.Equal(uint64(10000), res.TotalFee)
	assert.Equal(uint64(1000), res.ProtocolFee)
	assert.Equal(uint64(2000), res.CreatorFee)
	assert.Equal(uint64(3500), res.BuybackFee)
	assert.Equal(uint64(3500), res.StakingFee)
	assert.Equal(uint64(0), res.Dust)
	assert.Equal(et.accounts.FeeVault, res.FeeVault)

	assert.Equal(uint64(1000), et.balance(et.accounts.FeeVault))
	assert.Equal(uint64(2000), et.balance(et.creator))
	assert.Equal(uint64(3500), et.balance(et.accounts.Treasury))
	assert.Equal(uint64(3500), et.balance(et.accounts.StakingPool))

	// 999 floors to 99 + 199 + 349 + 349 = 996.
	event, err = et.exec(&types.DistributeFeesTx{FeeAmount: 999, Creator: et.creator})
	assert.Nil(err)
	res = event.(*types.FeesDistributed)
	assert.Equal(uint64(996), res.Distributed())
	assert.Equal(uint64(3), res.Dust)
	assert.Equal(uint64(1099), et.balance(et.accounts.FeeVault))
}

func TestDistributeFeesRejectsZeroCreator(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()

	_, err := et.exec(&types.DistributeFeesTx{FeeAmount: 10000, Creator: types.AccountID{}})
	assert.True(errors.Is(err, result.ErrInvalidAccount))
	assert.Equal(uint64(0), et.balance(types.AccountID{}))
	assert.Equal(uint64(0), et.balance(et.accounts.FeeVault))
	assert.Equal(uint64(0), et.balance(et.accounts.Treasury))
}

func TestDistributeFeesConservation(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()

	rng := rand.New(rand.NewSource(7))
	total, dust := uint64(0), uint64(0)
	for i := 0; i < 100; i++ {
		fee := uint64(rng.Int63n(1<<40)) + 1
		event, err := et.exec(&types.DistributeFeesTx{FeeAmount: fee, Creator: et.creator})
		assert.Nil(err)
		res := event.(*types.FeesDistributed)
		assert.True(res.ProtocolFee <= fee && res.CreatorFee <= fee && res.BuybackFee <= fee && res.StakingFee <= fee)
		assert.True(res.Dust < 4)
		assert.Equal(fee, res.Distributed()+res.Dust)
		total += fee
		dust += res.Dust
	}

	credited := et.balance(et.accounts.FeeVault) + et.balance(et.creator) +
		et.balance(et.accounts.Treasury) + et.balance(et.accounts.StakingPool)
	assert.Equal(total-dust, credited)
}

func TestDistributeFeesFromPayer(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.bob, 1000)

	_, err := et.exec(&types.DistributeFeesTx{FeeAmount: 2000, Creator: et.creator, Payer: et.bob})
	assert.True(errors.Is(err, result.ErrInsufficientBalance))
	assert.Equal(uint64(1000), et.balance(et.bob))
	assert.Equal(uint64(0), et.balance(et.creator))

	_, err = et.exec(&types.DistributeFeesTx{FeeAmount: 999, Creator: et.creator, Payer: et.bob})
	assert.Nil(err)
	// The dust stays with the payer.
	assert.Equal(uint64(4), et.balance(et.bob))
}

func TestDistributeFeesAtomicity(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.accounts.FeeVault, 11)
	et.deposit(et.creator, 22)
	et.deposit(et.accounts.Treasury, 33)

	// The staking pool is credited last and has no room for its share.
	et.deposit(et.accounts.StakingPool, math.MaxUint64-100)

	_, err := et.exec(&types.DistributeFeesTx{FeeAmount: 10000, Creator: et.creator})
	assert.True(errors.Is(err, result.ErrOverflow))

	assert.Equal(uint64(11), et.balance(et.accounts.FeeVault))
	assert.Equal(uint64(22), et.balance(et.creator))
	assert.Equal(uint64(33), et.balance(et.accounts.Treasury))
	assert.Equal(uint64(math.MaxUint64-100), et.balance(et.accounts.StakingPool))
}

func TestDistributeFeesStorageFailure(t *testing.T) {
	assert := assert.New(t)

	db := &failOnDemandDatabase{MemDatabase: backend.NewMemDatabase()}
	et := newExecTestWithDB(db, core.AllowAll)
	et.initConfig()

	db.fail = true
	_, err := et.exec(&types.DistributeFeesTx{FeeAmount: 10000, Creator: et.creator})
	assert.NotNil(err)
	assert.Equal(errStorage, errors.Cause(err))
	db.fail = false

	assert.Equal(uint64(0), et.balance(et.accounts.FeeVault))
	assert.Equal(uint64(0), et.balance(et.creator))
	assert.Equal(uint64(0), et.balance(et.accounts.Treasury))
	assert.Equal(uint64(0), et.balance(et.accounts.StakingPool))
}

func TestDistributeFeesDefaultPoolIsTreasury(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.accounts.StakingPool = types.AccountID{}
	et.executor = NewExecutor(et.state, et.accounts, core.NewClock(et.clock), core.AllowAll)
	et.initConfig()

	_, err := et.exec(&types.DistributeFeesTx{FeeAmount: 10000, Creator: et.creator})
	assert.Nil(err)
	assert.Equal(uint64(7000), et.balance(et.accounts.Treasury))
}

func TestExecuteBuyback(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.accounts.Treasury, 100)

	_, err := et.exec(&types.ExecuteBuybackTx{Caller: et.alice, Recipient: et.bob, Amount: 10})
	assert.True(errors.Is(err, result.ErrUnauthorized))

	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Recipient: et.bob, Amount: 0})
	assert.True(errors.Is(err, result.ErrInvalidAmount))

	// Never clamps to the available balance.
	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Recipient: et.bob, Amount: 101})
	assert.True(errors.Is(err, result.ErrInsufficientTreasuryBalance))
	assert.Equal(uint64(100), et.balance(et.accounts.Treasury))
	assert.Equal(uint64(0), et.balance(et.bob))

	event, err := et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Recipient: et.bob, Amount: 60})
	assert.Nil(err)
	assert.Equal(&types.BuybackExecuted{
		Treasury:  et.accounts.Treasury,
		Amount:    60,
		Authority: et.authority,
		Recipient: et.bob,
	}, event)
	assert.Equal(uint64(40), et.balance(et.accounts.Treasury))
	assert.Equal(uint64(60), et.balance(et.bob))

	// Zero recipient burns.
	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Amount: 40})
	assert.Nil(err)
	assert.Equal(uint64(0), et.balance(et.accounts.Treasury))
	assert.Equal(uint64(0), et.balance(types.AccountID{}))
}

func TestWithdrawFees(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()

	_, err := et.exec(&types.DistributeFeesTx{FeeAmount: 10000, Creator: et.creator})
	assert.Nil(err)

	_, err = et.exec(&types.WithdrawFeesTx{Caller: et.bob, Recipient: et.bob, Amount: 1})
	assert.True(errors.Is(err, result.ErrUnauthorized))

	_, err = et.exec(&types.WithdrawFeesTx{Caller: et.authority, Recipient: types.AccountID{}, Amount: 1})
	assert.True(errors.Is(err, result.ErrInvalidAccount))
	assert.Equal(uint64(1000), et.balance(et.accounts.FeeVault))

	_, err = et.exec(&types.WithdrawFeesTx{Caller: et.authority, Recipient: et.bob, Amount: 1001})
	assert.True(errors.Is(err, result.ErrInsufficientBalance))
	assert.Equal(uint64(1000), et.balance(et.accounts.FeeVault))

	_, err = et.exec(&types.WithdrawFeesTx{Caller: et.authority, Recipient: et.bob, Amount: 1000})
	assert.Nil(err)
	assert.Equal(uint64(0), et.balance(et.accounts.FeeVault))
	assert.Equal(uint64(1000), et.balance(et.bob))
}

func TestStakingLifecycle(t *testing.T) {
	require := require.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.alice, 100)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: 0})
	require.True(errors.Is(err, result.ErrInvalidAmount))

	_, err = et.exec(&types.StakeTx{User: et.alice, Amount: 101})
	require.True(errors.Is(err, result.ErrInsufficientBalance))

	event, err := et.exec(&types.StakeTx{User: et.alice, Amount: 100})
	require.Nil(err)
	require.Equal(&types.TokensStaked{
		User:         et.alice,
		Amount:       100,
		Vault:        types.StakingVaultID(et.alice),
		StakedAmount: 100,
	}, event)
	require.Equal(uint64(0), et.balance(et.alice))
	require.Equal(uint64(100), et.balance(et.accounts.Treasury))

	vault := et.vault(et.alice)
	require.Equal(uint64(100), vault.StakedAmount)
	require.Equal(testGenesisTime.Unix(), vault.LastUpdate)

	event, err = et.exec(&types.UnstakeTx{User: et.alice})
	require.Nil(err)
	unstaked := event.(*types.TokensUnstaked)
	require.Equal(uint64(100), unstaked.Principal)
	require.Equal(uint64(0), unstaked.Reward)
	require.Equal(types.StakingVaultID(et.alice), unstaked.Vault)

	require.True(et.vault(et.alice).IsEmpty())
	require.Equal(uint64(100), et.balance(et.alice))
	require.Equal(uint64(0), et.balance(et.accounts.Treasury))

	_, err = et.exec(&types.UnstakeTx{User: et.alice})
	require.True(errors.Is(err, result.ErrNothingStaked))

	_, err = et.exec(&types.UnstakeTx{User: et.bob})
	require.True(errors.Is(err, result.ErrNothingStaked))
}

func TestRewardFormula(t *testing.T) {
	require := require.New(t)
	et := newExecTest()
	et.initConfig()

	const principal = uint64(3153600000)
	et.deposit(et.alice, principal)
	et.deposit(et.accounts.Treasury, principal)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: principal})
	require.Nil(err)
	treasuryBefore := et.balance(et.accounts.Treasury)
	require.Equal(2*principal, treasuryBefore)

	et.advance(year)

	event, err := et.exec(&types.UnstakeTx{User: et.alice})
	require.Nil(err)
	unstaked := event.(*types.TokensUnstaked)
	require.Equal(principal, unstaked.Principal)
	require.Equal(uint64(3153600000), unstaked.Reward)

	require.Equal(uint64(6307200000), treasuryBefore-et.balance(et.accounts.Treasury))
	require.Equal(uint64(6307200000), et.balance(et.alice))

	vault := et.vault(et.alice)
	require.True(vault.IsEmpty())
	require.Equal(testGenesisTime.Add(year).Unix(), vault.LastUpdate)
}

func TestUnstakeInsufficientTreasury(t *testing.T) {
	require := require.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.alice, 100)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: 100})
	require.Nil(err)
	et.advance(year)

	before := et.vault(et.alice)
	_, err = et.exec(&types.UnstakeTx{User: et.alice})
	require.True(errors.Is(err, result.ErrInsufficientTreasuryForRewards))

	after := et.vault(et.alice)
	require.Equal(before, after)
	require.Equal(uint64(100), after.StakedAmount)
	require.Equal(testGenesisTime.Unix(), after.LastUpdate)
	require.Equal(uint64(100), et.balance(et.accounts.Treasury))
	require.Equal(uint64(0), et.balance(et.alice))

	// Once funded, the same unstake pays in full.
	et.deposit(et.accounts.Treasury, 100)
	event, err := et.exec(&types.UnstakeTx{User: et.alice})
	require.Nil(err)
	require.Equal(uint64(200), event.(*types.TokensUnstaked).Payout())
}

func TestStakeTwiceSettlesFirstPeriod(t *testing.T) {
	require := require.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.alice, 2000)
	et.deposit(et.accounts.Treasury, 10000)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: 1000})
	require.Nil(err)

	et.advance(year / 2)
	event, err := et.exec(&types.StakeTx{User: et.alice, Amount: 1000})
	require.Nil(err)
	staked := event.(*types.TokensStaked)
	require.Equal(uint64(500), staked.SettledReward)
	require.Equal(uint64(2000), staked.StakedAmount)

	vault := et.vault(et.alice)
	require.Equal(uint64(500), vault.PendingReward)
	require.Equal(testGenesisTime.Add(year/2).Unix(), vault.LastUpdate)

	et.advance(year / 2)
	event, err = et.exec(&types.UnstakeTx{User: et.alice})
	require.Nil(err)
	unstaked := event.(*types.TokensUnstaked)
	// 1000 for half a year, then 2000 for half a year.
	require.Equal(uint64(2000), unstaked.Principal)
	require.Equal(uint64(1500), unstaked.Reward)

	vault = et.vault(et.alice)
	require.True(vault.IsEmpty())
	require.Equal(uint64(0), vault.PendingReward)
}

func TestClockRegression(t *testing.T) {
	require := require.New(t)

	now := int64(1000000)
	clock := core.ClockFunc(func() int64 { return now })
	et := newExecTest()
	et.executor = NewExecutor(et.state, et.accounts, clock, core.AllowAll)
	et.initConfig()
	et.deposit(et.alice, 2000)
	et.deposit(et.accounts.Treasury, 10000)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: 1000})
	require.Nil(err)

	now -= 3600
	event, err := et.exec(&types.StakeTx{User: et.alice, Amount: 1000})
	require.Nil(err)
	require.Equal(uint64(0), event.(*types.TokensStaked).SettledReward)
	require.Equal(int64(1000000), et.vault(et.alice).LastUpdate)

	pending, err := AccruedReward(et.vault(et.alice), now)
	require.Nil(err)
	require.Equal(uint64(0), pending)

	event, err = et.exec(&types.UnstakeTx{User: et.alice})
	require.Nil(err)
	unstaked := event.(*types.TokensUnstaked)
	require.Equal(uint64(2000), unstaked.Principal)
	require.Equal(uint64(0), unstaked.Reward)
	require.Equal(uint64(2000), et.balance(et.alice))
}

func TestBuybackCannotSpendStakedPrincipal(t *testing.T) {
	require := require.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.alice, 100)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: 100})
	require.Nil(err)
	require.Equal(uint64(100), et.totalStaked())

	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Recipient: et.bob, Amount: 1})
	require.True(errors.Is(err, result.ErrInsufficientTreasuryBalance))
	require.Equal(uint64(100), et.balance(et.accounts.Treasury))
	require.Equal(uint64(0), et.balance(et.bob))

	// Only the buyback share beyond the staked principal is spendable.
	_, err = et.exec(&types.DistributeFeesTx{FeeAmount: 10000, Creator: et.creator})
	require.Nil(err)
	require.Equal(uint64(3600), et.balance(et.accounts.Treasury))

	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Recipient: et.bob, Amount: 3501})
	require.True(errors.Is(err, result.ErrInsufficientTreasuryBalance))
	_, err = et.exec(&types.ExecuteBuybackTx{Caller: et.authority, Recipient: et.bob, Amount: 3500})
	require.Nil(err)
	require.Equal(uint64(100), et.balance(et.accounts.Treasury))

	event, err := et.exec(&types.UnstakeTx{User: et.alice})
	require.Nil(err)
	require.Equal(uint64(100), event.(*types.TokensUnstaked).Principal)
	require.Equal(uint64(0), event.(*types.TokensUnstaked).Reward)
	require.Equal(uint64(100), et.balance(et.alice))
	require.Equal(uint64(0), et.totalStaked())
}

func TestRewardsNeverDrawOnOtherStakersPrincipal(t *testing.T) {
	require := require.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.alice, 100)
	et.deposit(et.bob, 100)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: 100})
	require.Nil(err)
	_, err = et.exec(&types.StakeTx{User: et.bob, Amount: 100})
	require.Nil(err)
	require.Equal(uint64(200), et.totalStaked())
	et.advance(year)

	// The treasury holds exactly the staked principal, so no reward is payable.
	_, err = et.exec(&types.UnstakeTx{User: et.alice})
	require.True(errors.Is(err, result.ErrInsufficientTreasuryForRewards))
	require.Equal(uint64(100), et.vault(et.alice).StakedAmount)
	require.Equal(uint64(200), et.balance(et.accounts.Treasury))
	require.Equal(uint64(200), et.totalStaked())

	// Funding one reward lets exactly one staker out.
	et.deposit(et.accounts.Treasury, 100)
	event, err := et.exec(&types.UnstakeTx{User: et.alice})
	require.Nil(err)
	require.Equal(uint64(200), event.(*types.TokensUnstaked).Payout())
	require.Equal(uint64(100), et.balance(et.accounts.Treasury))
	require.Equal(uint64(100), et.totalStaked())

	_, err = et.exec(&types.UnstakeTx{User: et.bob})
	require.True(errors.Is(err, result.ErrInsufficientTreasuryForRewards))
	require.Equal(uint64(100), et.vault(et.bob).StakedAmount)

	et.deposit(et.accounts.Treasury, 100)
	event, err = et.exec(&types.UnstakeTx{User: et.bob})
	require.Nil(err)
	require.Equal(uint64(200), event.(*types.TokensUnstaked).Payout())
	require.Equal(uint64(0), et.balance(et.accounts.Treasury))
	require.Equal(uint64(0), et.totalStaked())
}

func TestTotalStakedMatchesVaults(t *testing.T) {
	require := require.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.accounts.Treasury, 1000000)

	users := []types.AccountID{et.alice, et.bob, et.creator}
	for _, user := range users {
		et.deposit(user, 10000)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		user := users[rng.Intn(len(users))]
		if rng.Intn(3) == 0 {
			_, err := et.exec(&types.UnstakeTx{User: user})
			if err != nil {
				require.True(errors.Is(err, result.ErrNothingStaked), err.Error())
			}
		} else {
			_, err := et.exec(&types.StakeTx{User: user, Amount: uint64(rng.Intn(100) + 1)})
			if err != nil {
				require.True(errors.Is(err, result.ErrInsufficientBalance), err.Error())
			}
		}
		et.advance(time.Duration(rng.Intn(3600)) * time.Second)

		var sum uint64
		for _, u := range users {
			if vault := et.vault(u); vault != nil {
				sum += vault.StakedAmount
			}
		}
		require.Equal(sum, et.totalStaked())
		require.True(et.balance(et.accounts.Treasury) >= sum)
	}
}

func TestStakeOverflow(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()
	et.initConfig()
	et.deposit(et.alice, math.MaxUint64)

	_, err := et.exec(&types.StakeTx{User: et.alice, Amount: math.MaxUint64})
	assert.Nil(err)

	// The treasury is full, so any further principal overflows it.
	et.deposit(et.bob, 1)
	_, err = et.exec(&types.StakeTx{User: et.bob, Amount: 1})
	assert.True(errors.Is(err, result.ErrOverflow))
	assert.Equal(uint64(1), et.balance(et.bob))
	assert.Nil(et.vault(et.bob))
}

func TestUnknownTx(t *testing.T) {
	assert := assert.New(t)
	et := newExecTest()

	_, err := et.exec(nil)
	assert.NotNil(err)
}
