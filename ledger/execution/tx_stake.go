package execution

import (
	"github.com/pkg/errors"

	"github.com/clawnch/ledger/core"
	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
)

var _ TxExecutor = (*StakeTxExecutor)(nil)
var _ TxExecutor = (*UnstakeTxExecutor)(nil)

// AccruedReward returns what the vault has earned up to now: the reward settled
// by earlier stakes plus the linear reward on the current principal since the
// last settlement. A clock that went backwards earns nothing.
func AccruedReward(vault *types.StakingVault, now int64) (uint64, error) {
	if vault == nil || vault.IsEmpty() {
		return 0, nil
	}
	reward, err := types.Reward(vault.StakedAmount, now-vault.LastUpdate)
	if err != nil {
		return 0, err
	}
	return types.CheckedAdd(vault.PendingReward, reward)
}

// settle moves the reward earned since the last settlement into PendingReward.
// LastUpdate never moves backwards, otherwise the regressed interval would be
// paid twice once the clock recovers.
func settle(vault *types.StakingVault, now int64) (uint64, error) {
	reward, err := types.Reward(vault.StakedAmount, now-vault.LastUpdate)
	if err != nil {
		return 0, err
	}
	pending, err := types.CheckedAdd(vault.PendingReward, reward)
	if err != nil {
		return 0, err
	}
	vault.PendingReward = pending
	if now > vault.LastUpdate {
		vault.LastUpdate = now
	}
	return reward, nil
}

// ------------------------------- Stake Transaction -----------------------------------

// StakeTxExecutor implements the TxExecutor interface. Staked principal is
// held by the treasury, which also pays it back on unstake.
type StakeTxExecutor struct {
	accounts types.Accounts
	clock    core.Clock
}

// NewStakeTxExecutor creates a new instance of StakeTxExecutor
func NewStakeTxExecutor(accounts types.Accounts, clock core.Clock) *StakeTxExecutor {
	return &StakeTxExecutor{accounts: accounts, clock: clock}
}

func (exec *StakeTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.StakeTx)

	if err := checkAmount(tx.Amount); err != nil {
		return err
	}
	balance, err := view.GetBalance(tx.User)
	if err != nil {
		return err
	}
	if balance < tx.Amount {
		return errors.Wrapf(result.ErrInsufficientBalance, "%v holds %v, staking %v", tx.User, balance, tx.Amount)
	}
	return nil
}

func (exec *StakeTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.StakeTx)
	now := exec.clock.Now()

	vault, err := view.GetStakingVault(tx.User)
	if err != nil {
		return nil, err
	}
	if vault == nil {
		vault = types.NewStakingVault(tx.User)
	}

	settled := uint64(0)
	if vault.IsEmpty() {
		vault.LastUpdate = now
	} else {
		// Settle at the old principal before the new principal starts earning.
		if settled, err = settle(vault, now); err != nil {
			return nil, errors.Wrap(err, "settle")
		}
	}

	staked, err := types.CheckedAdd(vault.StakedAmount, tx.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "staking vault")
	}
	vault.StakedAmount = staked

	total, err := view.GetTotalStaked()
	if err != nil {
		return nil, err
	}
	if total, err = types.CheckedAdd(total, tx.Amount); err != nil {
		return nil, errors.Wrap(err, "total staked")
	}

	if _, err := view.Debit(tx.User, tx.Amount); err != nil {
		return nil, err
	}
	if _, err := view.Credit(exec.accounts.Treasury, tx.Amount); err != nil {
		return nil, err
	}
	if err := view.SetTotalStaked(total); err != nil {
		return nil, err
	}
	if err := view.SetStakingVault(tx.User, vault); err != nil {
		return nil, err
	}

	return &types.TokensStaked{
		User:          tx.User,
		Amount:        tx.Amount,
		Vault:         types.StakingVaultID(tx.User),
		StakedAmount:  vault.StakedAmount,
		SettledReward: settled,
	}, nil
}

// ------------------------------- Unstake Transaction -----------------------------------

// UnstakeTxExecutor implements the TxExecutor interface
type UnstakeTxExecutor struct {
	accounts types.Accounts
	clock    core.Clock
}

// NewUnstakeTxExecutor creates a new instance of UnstakeTxExecutor
func NewUnstakeTxExecutor(accounts types.Accounts, clock core.Clock) *UnstakeTxExecutor {
	return &UnstakeTxExecutor{accounts: accounts, clock: clock}
}

func (exec *UnstakeTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.UnstakeTx)

	vault, err := view.GetStakingVault(tx.User)
	if err != nil {
		return err
	}
	if vault == nil || vault.IsEmpty() {
		return errors.Wrapf(result.ErrNothingStaked, "user %v", tx.User)
	}
	return nil
}

func (exec *UnstakeTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.UnstakeTx)
	now := exec.clock.Now()

	vault, err := view.GetStakingVault(tx.User)
	if err != nil {
		return nil, err
	}
	if vault == nil || vault.IsEmpty() {
		return nil, errors.Wrapf(result.ErrNothingStaked, "user %v", tx.User)
	}

	principal := vault.StakedAmount
	reward, err := AccruedReward(vault, now)
	if err != nil {
		return nil, err
	}
	payout, err := types.CheckedAdd(principal, reward)
	if err != nil {
		return nil, err
	}

	// The principal of other vaults is not available for this payout. All or
	// nothing: a short treasury pays neither principal nor reward.
	balance, err := view.GetBalance(exec.accounts.Treasury)
	if err != nil {
		return nil, err
	}
	reserved, err := view.GetTotalStaked()
	if err != nil {
		return nil, err
	}
	if reserved < principal {
		return nil, errors.Errorf("total staked %v below the principal of %v (%v)", reserved, tx.User, principal)
	}
	others := reserved - principal
	if balance < others || balance-others < payout {
		return nil, errors.Wrapf(result.ErrInsufficientTreasuryForRewards,
			"treasury %v holds %v with %v staked by others, payout %v", exec.accounts.Treasury, balance, others, payout)
	}
	if err := debitVault(view, exec.accounts.Treasury, payout, result.ErrInsufficientTreasuryForRewards); err != nil {
		return nil, err
	}
	if _, err := view.Credit(tx.User, payout); err != nil {
		return nil, err
	}
	if err := view.SetTotalStaked(others); err != nil {
		return nil, err
	}

	vault.StakedAmount = 0
	vault.PendingReward = 0
	vault.LastUpdate = now
	if err := view.SetStakingVault(tx.User, vault); err != nil {
		return nil, err
	}

	return &types.TokensUnstaked{
		User:      tx.User,
		Principal: principal,
		Reward:    reward,
		Vault:     types.StakingVaultID(tx.User),
	}, nil
}
