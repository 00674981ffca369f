package execution

import (
	"github.com/pkg/errors"

	"github.com/clawnch/ledger/core"
	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
)

// authority combines the authority recorded on a resource with the host's
// authorizer. Both must accept the caller.
type authority struct {
	accounts   types.Accounts
	authorizer core.Authorizer
}

func (a *authority) check(caller, stored, resource types.AccountID) error {
	if caller != stored {
		return errors.Wrapf(result.ErrUnauthorized, "%v is not the authority of %v", caller, resource)
	}
	if !a.authorizer.IsAuthorized(caller, resource) {
		return errors.Wrapf(result.ErrUnauthorized, "%v rejected for %v", caller, resource)
	}
	return nil
}

func getFeeConfig(view *st.StoreView, accounts types.Accounts) (*types.FeeConfig, error) {
	fc, err := view.GetFeeConfig(accounts.Config)
	if err != nil {
		return nil, err
	}
	if fc == nil {
		return nil, errors.Wrapf(result.ErrConfigNotFound, "config %v", accounts.Config)
	}
	return fc, nil
}

func getFeeVault(view *st.StoreView, accounts types.Accounts) (*types.FeeVault, error) {
	fv, err := view.GetFeeVault(accounts.FeeVault)
	if err != nil {
		return nil, err
	}
	if fv == nil {
		return nil, errors.Wrapf(result.ErrConfigNotFound, "fee vault %v", accounts.FeeVault)
	}
	return fv, nil
}

func getTreasury(view *st.StoreView, accounts types.Accounts) (*types.TokenTreasury, error) {
	tr, err := view.GetTreasury(accounts.Treasury)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, errors.Wrapf(result.ErrConfigNotFound, "treasury %v", accounts.Treasury)
	}
	return tr, nil
}

// debitVault debits a protocol vault, reporting a shortfall as kind. Vault
// debits fail, they never clamp.
func debitVault(view *st.StoreView, id types.AccountID, amount uint64, kind error) error {
	balance, err := view.GetBalance(id)
	if err != nil {
		return err
	}
	if balance < amount {
		return errors.Wrapf(kind, "vault %v holds %v, requested %v", id, balance, amount)
	}
	_, err = view.Debit(id, amount)
	return err
}

// unreservedTreasury returns the treasury balance not backing staked principal,
// i.e. what a buyback may spend.
func unreservedTreasury(view *st.StoreView, accounts types.Accounts) (unreserved, reserved uint64, err error) {
	balance, err := view.GetBalance(accounts.Treasury)
	if err != nil {
		return 0, 0, err
	}
	if reserved, err = view.GetTotalStaked(); err != nil {
		return 0, 0, err
	}
	if reserved > balance {
		return 0, reserved, nil
	}
	return balance - reserved, reserved, nil
}

func checkAmount(amount uint64) error {
	if amount == 0 {
		return errors.Wrap(result.ErrInvalidAmount, "amount must be positive")
	}
	return nil
}
