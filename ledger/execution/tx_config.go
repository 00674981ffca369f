package execution

import (
	"github.com/pkg/errors"

	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
)

var _ TxExecutor = (*InitConfigTxExecutor)(nil)
var _ TxExecutor = (*UpdateConfigTxExecutor)(nil)
var _ TxExecutor = (*TransferAuthorityTxExecutor)(nil)

// ------------------------------- InitConfig Transaction -----------------------------------

// InitConfigTxExecutor implements the TxExecutor interface
type InitConfigTxExecutor struct {
	accounts types.Accounts
}

// NewInitConfigTxExecutor creates a new instance of InitConfigTxExecutor
func NewInitConfigTxExecutor(accounts types.Accounts) *InitConfigTxExecutor {
	return &InitConfigTxExecutor{accounts: accounts}
}

func (exec *InitConfigTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.InitConfigTx)

	if _, err := types.NewFeeConfig(tx.Caller, tx.ProtocolBps, tx.CreatorBps, tx.BuybackBps, tx.StakingBps); err != nil {
		return err
	}

	existing, err := view.GetFeeConfig(exec.accounts.Config)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Wrapf(result.ErrConfigExists, "config %v", exec.accounts.Config)
	}
	return nil
}

func (exec *InitConfigTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.InitConfigTx)

	fc, err := types.NewFeeConfig(tx.Caller, tx.ProtocolBps, tx.CreatorBps, tx.BuybackBps, tx.StakingBps)
	if err != nil {
		return nil, err
	}
	if err := view.SetFeeConfig(exec.accounts.Config, fc); err != nil {
		return nil, err
	}
	if err := view.SetFeeVault(exec.accounts.FeeVault, &types.FeeVault{Authority: tx.Caller}); err != nil {
		return nil, err
	}
	treasury := &types.TokenTreasury{Authority: tx.Caller, Mint: exec.accounts.Mint}
	if err := view.SetTreasury(exec.accounts.Treasury, treasury); err != nil {
		return nil, err
	}

	return &types.ConfigInitialized{
		Authority:      fc.Authority,
		ProtocolFeeBps: fc.ProtocolBps,
		CreatorFeeBps:  fc.CreatorBps,
		BuybackFeeBps:  fc.BuybackBps,
		StakingFeeBps:  fc.StakingBps,
	}, nil
}

// ------------------------------- UpdateConfig Transaction -----------------------------------

// UpdateConfigTxExecutor implements the TxExecutor interface
type UpdateConfigTxExecutor struct {
	accounts types.Accounts
	auth     *authority
}

// NewUpdateConfigTxExecutor creates a new instance of UpdateConfigTxExecutor
func NewUpdateConfigTxExecutor(accounts types.Accounts, auth *authority) *UpdateConfigTxExecutor {
	return &UpdateConfigTxExecutor{accounts: accounts, auth: auth}
}

func (exec *UpdateConfigTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.UpdateConfigTx)

	fc, err := getFeeConfig(view, exec.accounts)
	if err != nil {
		return err
	}
	if err := exec.auth.check(tx.Caller, fc.Authority, exec.accounts.Config); err != nil {
		return err
	}
	_, err = types.NewFeeConfig(fc.Authority, tx.ProtocolBps, tx.CreatorBps, tx.BuybackBps, tx.StakingBps)
	return err
}

func (exec *UpdateConfigTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.UpdateConfigTx)

	fc, err := getFeeConfig(view, exec.accounts)
	if err != nil {
		return nil, err
	}
	fc.ProtocolBps = tx.ProtocolBps
	fc.CreatorBps = tx.CreatorBps
	fc.BuybackBps = tx.BuybackBps
	fc.StakingBps = tx.StakingBps
	if err := view.SetFeeConfig(exec.accounts.Config, fc); err != nil {
		return nil, err
	}

	return &types.ConfigUpdated{
		Authority:      fc.Authority,
		ProtocolFeeBps: fc.ProtocolBps,
		CreatorFeeBps:  fc.CreatorBps,
		BuybackFeeBps:  fc.BuybackBps,
		StakingFeeBps:  fc.StakingBps,
	}, nil
}

// ------------------------------- TransferAuthority Transaction -----------------------------------

// TransferAuthorityTxExecutor implements the TxExecutor interface. The config,
// fee vault and treasury authorities move together; records held by a
// different authority are left alone.
type TransferAuthorityTxExecutor struct {
	accounts types.Accounts
	auth     *authority
}

// NewTransferAuthorityTxExecutor creates a new instance of TransferAuthorityTxExecutor
func NewTransferAuthorityTxExecutor(accounts types.Accounts, auth *authority) *TransferAuthorityTxExecutor {
	return &TransferAuthorityTxExecutor{accounts: accounts, auth: auth}
}

func (exec *TransferAuthorityTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.TransferAuthorityTx)

	if tx.NewAuthority.IsZero() {
		return errors.Wrap(result.ErrInvalidAuthority, "new authority is the zero id")
	}
	fc, err := getFeeConfig(view, exec.accounts)
	if err != nil {
		return err
	}
	return exec.auth.check(tx.Caller, fc.Authority, exec.accounts.Config)
}

func (exec *TransferAuthorityTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.TransferAuthorityTx)

	fc, err := getFeeConfig(view, exec.accounts)
	if err != nil {
		return nil, err
	}
	previous := fc.Authority
	fc.Authority = tx.NewAuthority
	if err := view.SetFeeConfig(exec.accounts.Config, fc); err != nil {
		return nil, err
	}

	fv, err := view.GetFeeVault(exec.accounts.FeeVault)
	if err != nil {
		return nil, err
	}
	if fv != nil && fv.Authority == previous {
		fv.Authority = tx.NewAuthority
		if err := view.SetFeeVault(exec.accounts.FeeVault, fv); err != nil {
			return nil, err
		}
	}

	tr, err := view.GetTreasury(exec.accounts.Treasury)
	if err != nil {
		return nil, err
	}
	if tr != nil && tr.Authority == previous {
		tr.Authority = tx.NewAuthority
		if err := view.SetTreasury(exec.accounts.Treasury, tr); err != nil {
			return nil, err
		}
	}

	return &types.AuthorityTransferred{
		PreviousAuthority: previous,
		NewAuthority:      tx.NewAuthority,
	}, nil
}
