package ledger

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/common/util"
	"github.com/clawnch/ledger/core"
	exec "github.com/clawnch/ledger/ledger/execution"
	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
	"github.com/clawnch/ledger/metrics"
	"github.com/clawnch/ledger/store/database"
)

var logger = util.GetLoggerForModule("ledger")

var _ core.Ledger = (*Ledger)(nil)

// Params holds the collaborators of a Ledger. DB and Clock are required; a nil
// Authorizer allows every caller that matches the stored authority, a nil
// EventSink drops events and nil Metrics disables instrumentation.
type Params struct {
	DB         database.Database
	Accounts   types.Accounts
	Clock      core.Clock
	Authorizer core.Authorizer
	EventSink  core.EventSink
	Metrics    *metrics.Metrics
}

// Ledger implements the core.Ledger interface. Every mutating operation is a
// single ledger transaction; its event is emitted only after the commit.
type Ledger struct {
	state    *st.LedgerState
	accounts types.Accounts
	clock    core.Clock
	executor *exec.Executor
	sink     core.EventSink
	metrics  *metrics.Metrics
}

// NewLedger creates a new instance of Ledger
func NewLedger(params Params) (*Ledger, error) {
	if params.DB == nil {
		return nil, errors.New("ledger requires a database")
	}
	if params.Clock == nil {
		return nil, errors.New("ledger requires a clock")
	}
	if params.Accounts.Config.IsZero() || params.Accounts.FeeVault.IsZero() || params.Accounts.Treasury.IsZero() {
		return nil, errors.New("ledger requires config, fee vault and treasury account ids")
	}
	sink := params.EventSink
	if sink == nil {
		sink = core.NopSink{}
	}

	state := st.NewLedgerState(params.DB)
	ledger := &Ledger{
		state:    state,
		accounts: params.Accounts,
		clock:    params.Clock,
		executor: exec.NewExecutor(state, params.Accounts, params.Clock, params.Authorizer),
		sink:     sink,
		metrics:  params.Metrics,
	}
	return ledger, nil
}

// GetState returns the state of the ledger
func (ledger *Ledger) GetState() *st.LedgerState {
	return ledger.state
}

// Accounts returns the protocol account ids the ledger was created with.
func (ledger *Ledger) Accounts() types.Accounts {
	return ledger.accounts
}

func (ledger *Ledger) execute(operation string, tx types.Tx) (types.Event, error) {
	event, err := ledger.executor.ExecuteTx(tx)
	ledger.metrics.ObserveOperation(operation, result.CodeOf(err))
	if err != nil {
		logger.WithFields(log.Fields{"operation": operation}).Debugf("Rejected: %v", err)
		return nil, err
	}
	ledger.sink.Emit(event)
	return event, nil
}

// InitializeConfig creates the fee configuration, the fee vault and the
// treasury, all owned by caller.
func (ledger *Ledger) InitializeConfig(caller types.AccountID, protocolBps, creatorBps, buybackBps, stakingBps uint16) (*types.FeeConfig, error) {
	_, err := ledger.execute("initialize_config", &types.InitConfigTx{
		Caller:      caller,
		ProtocolBps: protocolBps,
		CreatorBps:  creatorBps,
		BuybackBps:  buybackBps,
		StakingBps:  stakingBps,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("Fee configuration initialized by %v", caller)
	return ledger.GetFeeConfig()
}

// UpdateConfig replaces the fee split. The authority is unchanged.
func (ledger *Ledger) UpdateConfig(caller types.AccountID, protocolBps, creatorBps, buybackBps, stakingBps uint16) (*types.FeeConfig, error) {
	_, err := ledger.execute("update_config", &types.UpdateConfigTx{
		Caller:      caller,
		ProtocolBps: protocolBps,
		CreatorBps:  creatorBps,
		BuybackBps:  buybackBps,
		StakingBps:  stakingBps,
	})
	if err != nil {
		return nil, err
	}
	return ledger.GetFeeConfig()
}

// TransferAuthority hands the configuration, fee vault and treasury to newAuthority.
func (ledger *Ledger) TransferAuthority(caller, newAuthority types.AccountID) (*types.AuthorityTransferred, error) {
	event, err := ledger.execute("transfer_authority", &types.TransferAuthorityTx{
		Caller:       caller,
		NewAuthority: newAuthority,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("Authority transferred to %v", newAuthority)
	return event.(*types.AuthorityTransferred), nil
}

// DistributeFees splits a fee that enters the ledger from outside.
func (ledger *Ledger) DistributeFees(feeAmount uint64, creator types.AccountID) (*types.FeesDistributed, error) {
	return ledger.distributeFees(&types.DistributeFeesTx{FeeAmount: feeAmount, Creator: creator})
}

// DistributeFeesFrom splits a fee held by payer. The payer is debited the
// distributed total and keeps the dust. A zero payer behaves like DistributeFees.
func (ledger *Ledger) DistributeFeesFrom(payer, creator types.AccountID, feeAmount uint64) (*types.FeesDistributed, error) {
	return ledger.distributeFees(&types.DistributeFeesTx{FeeAmount: feeAmount, Creator: creator, Payer: payer})
}

func (ledger *Ledger) distributeFees(tx *types.DistributeFeesTx) (*types.FeesDistributed, error) {
	event, err := ledger.execute("distribute_fees", tx)
	if err != nil {
		return nil, err
	}
	res := event.(*types.FeesDistributed)
	ledger.metrics.ObserveFees(res.ProtocolFee, res.CreatorFee, res.BuybackFee, res.StakingFee, res.Dust)
	return res, nil
}

// ExecuteBuyback spends amount from the treasury, crediting recipient. A zero
// recipient burns the tokens.
func (ledger *Ledger) ExecuteBuyback(caller, recipient types.AccountID, amount uint64) (*types.BuybackExecuted, error) {
	event, err := ledger.execute("execute_buyback", &types.ExecuteBuybackTx{
		Caller:    caller,
		Recipient: recipient,
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}
	ledger.metrics.ObserveBuyback(amount)
	return event.(*types.BuybackExecuted), nil
}

// WithdrawFees moves amount out of the fee vault to recipient.
func (ledger *Ledger) WithdrawFees(caller, recipient types.AccountID, amount uint64) (*types.FeesWithdrawn, error) {
	event, err := ledger.execute("withdraw_fees", &types.WithdrawFeesTx{
		Caller:    caller,
		Recipient: recipient,
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}
	ledger.metrics.ObserveWithdrawal(amount)
	return event.(*types.FeesWithdrawn), nil
}

// Deposit credits account with tokens that entered from outside the ledger.
func (ledger *Ledger) Deposit(account types.AccountID, amount uint64) (*types.Deposited, error) {
	event, err := ledger.execute("deposit", &types.DepositTx{Account: account, Amount: amount})
	if err != nil {
		return nil, err
	}
	ledger.metrics.ObserveDeposit(amount)
	return event.(*types.Deposited), nil
}

// Stake moves amount from user into the user's staking vault.
func (ledger *Ledger) Stake(user types.AccountID, amount uint64) (*types.TokensStaked, error) {
	event, err := ledger.execute("stake", &types.StakeTx{User: user, Amount: amount})
	if err != nil {
		return nil, err
	}
	ledger.metrics.ObserveStake(amount)
	return event.(*types.TokensStaked), nil
}

// Unstake empties the user's vault, paying principal and reward from the treasury.
func (ledger *Ledger) Unstake(user types.AccountID) (*types.TokensUnstaked, error) {
	event, err := ledger.execute("unstake", &types.UnstakeTx{User: user})
	if err != nil {
		return nil, err
	}
	res := event.(*types.TokensUnstaked)
	ledger.metrics.ObserveUnstake(res.Principal, res.Reward)
	return res, nil
}

// ------------------------------- Queries -----------------------------------

// GetFeeConfig returns the current fee configuration.
func (ledger *Ledger) GetFeeConfig() (fc *types.FeeConfig, err error) {
	err = ledger.state.View(func(view *st.StoreView) error {
		fc, err = view.GetFeeConfig(ledger.accounts.Config)
		if err == nil && fc == nil {
			err = errors.Wrapf(result.ErrConfigNotFound, "config %v", ledger.accounts.Config)
		}
		return err
	})
	return fc, err
}

// GetFeeVault returns the fee vault with its balance.
func (ledger *Ledger) GetFeeVault() (info *types.FeeVaultInfo, err error) {
	err = ledger.state.View(func(view *st.StoreView) error {
		fv, err := view.GetFeeVault(ledger.accounts.FeeVault)
		if err != nil {
			return err
		}
		if fv == nil {
			return errors.Wrapf(result.ErrConfigNotFound, "fee vault %v", ledger.accounts.FeeVault)
		}
		balance, err := view.GetBalance(ledger.accounts.FeeVault)
		if err != nil {
			return err
		}
		info = &types.FeeVaultInfo{
			ID:        ledger.accounts.FeeVault,
			Authority: fv.Authority,
			Balance:   common.JSONUint64(balance),
		}
		return nil
	})
	return info, err
}

// GetTreasury returns the treasury with its balance.
func (ledger *Ledger) GetTreasury() (info *types.TreasuryInfo, err error) {
	err = ledger.state.View(func(view *st.StoreView) error {
		tr, err := view.GetTreasury(ledger.accounts.Treasury)
		if err != nil {
			return err
		}
		if tr == nil {
			return errors.Wrapf(result.ErrConfigNotFound, "treasury %v", ledger.accounts.Treasury)
		}
		balance, err := view.GetBalance(ledger.accounts.Treasury)
		if err != nil {
			return err
		}
		info = &types.TreasuryInfo{
			ID:        ledger.accounts.Treasury,
			Authority: tr.Authority,
			Mint:      tr.Mint,
			Balance:   common.JSONUint64(balance),
		}
		return nil
	})
	return info, err
}

// GetStakingVault returns the vault of user. A user who never staked gets an
// empty vault.
func (ledger *Ledger) GetStakingVault(user types.AccountID) (info *types.StakingVaultInfo, err error) {
	err = ledger.state.View(func(view *st.StoreView) error {
		vault, err := view.GetStakingVault(user)
		if err != nil {
			return err
		}
		if vault == nil {
			vault = types.NewStakingVault(user)
		}
		info = types.NewStakingVaultInfo(vault)
		return nil
	})
	return info, err
}

// GetBalance returns the balance of account.
func (ledger *Ledger) GetBalance(account types.AccountID) (balance uint64, err error) {
	err = ledger.state.View(func(view *st.StoreView) error {
		balance, err = view.GetBalance(account)
		return err
	})
	return balance, err
}

// ListStakingVaults returns every vault ever created, ordered by owner.
func (ledger *Ledger) ListStakingVaults() ([]*types.StakingVaultInfo, error) {
	var vaults []*types.StakingVault
	err := ledger.state.View(func(view *st.StoreView) error {
		var err error
		vaults, err = view.ListStakingVaults()
		return err
	})
	if err != nil {
		return nil, err
	}
	infos := make([]*types.StakingVaultInfo, 0, len(vaults))
	for _, vault := range vaults {
		infos = append(infos, types.NewStakingVaultInfo(vault))
	}
	return infos, nil
}

// TotalStaked returns the principal of all vaults, the part of the treasury
// reserved for unstaking.
func (ledger *Ledger) TotalStaked() (uint64, error) {
	var total uint64
	err := ledger.state.View(func(view *st.StoreView) error {
		var err error
		total, err = view.GetTotalStaked()
		return err
	})
	return total, err
}

// PendingReward returns what Unstake would pay user as reward right now.
func (ledger *Ledger) PendingReward(user types.AccountID) (uint64, error) {
	var reward uint64
	err := ledger.state.View(func(view *st.StoreView) error {
		vault, err := view.GetStakingVault(user)
		if err != nil {
			return err
		}
		reward, err = exec.AccruedReward(vault, ledger.clock.Now())
		return err
	})
	return reward, err
}
