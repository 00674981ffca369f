package execution

import (
	"github.com/pkg/errors"

	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
)

var _ TxExecutor = (*ExecuteBuybackTxExecutor)(nil)
var _ TxExecutor = (*WithdrawFeesTxExecutor)(nil)
var _ TxExecutor = (*DepositTxExecutor)(nil)

// ------------------------------- ExecuteBuyback Transaction -----------------------------------

// ExecuteBuybackTxExecutor implements the TxExecutor interface. The spent
// tokens go to the recipient; a zero recipient burns them.
type ExecuteBuybackTxExecutor struct {
	accounts types.Accounts
	auth     *authority
}

// NewExecuteBuybackTxExecutor creates a new instance of ExecuteBuybackTxExecutor
func NewExecuteBuybackTxExecutor(accounts types.Accounts, auth *authority) *ExecuteBuybackTxExecutor {
	return &ExecuteBuybackTxExecutor{accounts: accounts, auth: auth}
}

func (exec *ExecuteBuybackTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.ExecuteBuybackTx)

	tr, err := getTreasury(view, exec.accounts)
	if err != nil {
		return err
	}
	if err := exec.auth.check(tx.Caller, tr.Authority, exec.accounts.Treasury); err != nil {
		return err
	}
	return checkAmount(tx.Amount)
}

func (exec *ExecuteBuybackTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.ExecuteBuybackTx)

	tr, err := getTreasury(view, exec.accounts)
	if err != nil {
		return nil, err
	}
	// Staked principal is custodied by the treasury but never spendable.
	unreserved, reserved, err := unreservedTreasury(view, exec.accounts)
	if err != nil {
		return nil, err
	}
	if unreserved < tx.Amount {
		return nil, errors.Wrapf(result.ErrInsufficientTreasuryBalance,
			"treasury %v has %v beyond %v staked, requested %v", exec.accounts.Treasury, unreserved, reserved, tx.Amount)
	}
	if err := debitVault(view, exec.accounts.Treasury, tx.Amount, result.ErrInsufficientTreasuryBalance); err != nil {
		return nil, err
	}
	if !tx.Recipient.IsZero() {
		if _, err := view.Credit(tx.Recipient, tx.Amount); err != nil {
			return nil, err
		}
	}

	return &types.BuybackExecuted{
		Treasury:  exec.accounts.Treasury,
		Amount:    tx.Amount,
		Authority: tr.Authority,
		Recipient: tx.Recipient,
	}, nil
}

// ------------------------------- WithdrawFees Transaction -----------------------------------

// WithdrawFeesTxExecutor implements the TxExecutor interface
type WithdrawFeesTxExecutor struct {
	accounts types.Accounts
	auth     *authority
}

// NewWithdrawFeesTxExecutor creates a new instance of WithdrawFeesTxExecutor
func NewWithdrawFeesTxExecutor(accounts types.Accounts, auth *authority) *WithdrawFeesTxExecutor {
	return &WithdrawFeesTxExecutor{accounts: accounts, auth: auth}
}

func (exec *WithdrawFeesTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.WithdrawFeesTx)

	fv, err := getFeeVault(view, exec.accounts)
	if err != nil {
		return err
	}
	if err := exec.auth.check(tx.Caller, fv.Authority, exec.accounts.FeeVault); err != nil {
		return err
	}
	if tx.Recipient.IsZero() {
		return errors.Wrap(result.ErrInvalidAccount, "recipient is the zero id")
	}
	return checkAmount(tx.Amount)
}

func (exec *WithdrawFeesTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.WithdrawFeesTx)

	fv, err := getFeeVault(view, exec.accounts)
	if err != nil {
		return nil, err
	}
	if err := debitVault(view, exec.accounts.FeeVault, tx.Amount, result.ErrInsufficientBalance); err != nil {
		return nil, err
	}
	if _, err := view.Credit(tx.Recipient, tx.Amount); err != nil {
		return nil, err
	}

	return &types.FeesWithdrawn{
		FeeVault:  exec.accounts.FeeVault,
		Amount:    tx.Amount,
		Authority: fv.Authority,
		Recipient: tx.Recipient,
	}, nil
}

// ------------------------------- Deposit Transaction -----------------------------------

// DepositTxExecutor implements the TxExecutor interface
type DepositTxExecutor struct {
}

// NewDepositTxExecutor creates a new instance of DepositTxExecutor
func NewDepositTxExecutor() *DepositTxExecutor {
	return &DepositTxExecutor{}
}

func (exec *DepositTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.DepositTx)
	return checkAmount(tx.Amount)
}

func (exec *DepositTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.DepositTx)

	balance, err := view.Credit(tx.Account, tx.Amount)
	if err != nil {
		return nil, err
	}
	return &types.Deposited{
		Account: tx.Account,
		Amount:  tx.Amount,
		Balance: balance,
	}, nil
}
