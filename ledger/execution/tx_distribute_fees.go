package execution

import (
	"github.com/pkg/errors"

	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/ledger/types/result"
)

var _ TxExecutor = (*DistributeFeesTxExecutor)(nil)

// ------------------------------- DistributeFees Transaction -----------------------------------

// DistributeFeesTxExecutor implements the TxExecutor interface
type DistributeFeesTxExecutor struct {
	accounts types.Accounts
}

// NewDistributeFeesTxExecutor creates a new instance of DistributeFeesTxExecutor
func NewDistributeFeesTxExecutor(accounts types.Accounts) *DistributeFeesTxExecutor {
	return &DistributeFeesTxExecutor{accounts: accounts}
}

func (exec *DistributeFeesTxExecutor) sanityCheck(view *st.StoreView, transaction types.Tx) error {
	tx := transaction.(*types.DistributeFeesTx)

	if err := checkAmount(tx.FeeAmount); err != nil {
		return err
	}
	if tx.Creator.IsZero() {
		return errors.Wrap(result.ErrInvalidAccount, "creator is the zero id")
	}
	_, err := getFeeConfig(view, exec.accounts)
	return err
}

func (exec *DistributeFeesTxExecutor) process(view *st.StoreView, transaction types.Tx) (types.Event, error) {
	tx := transaction.(*types.DistributeFeesTx)

	fc, err := getFeeConfig(view, exec.accounts)
	if err != nil {
		return nil, err
	}
	res, err := computeDistribution(tx.FeeAmount, fc)
	if err != nil {
		return nil, err
	}
	res.FeeVault = exec.accounts.FeeVault
	res.Creator = tx.Creator
	res.Payer = tx.Payer

	if !tx.Payer.IsZero() {
		if _, err := view.Debit(tx.Payer, res.Distributed()); err != nil {
			return nil, errors.Wrap(err, "payer")
		}
	}

	credits := []struct {
		id     types.AccountID
		amount uint64
	}{
		{exec.accounts.FeeVault, res.ProtocolFee},
		{tx.Creator, res.CreatorFee},
		{exec.accounts.Treasury, res.BuybackFee},
		{exec.accounts.StakingPoolOrTreasury(), res.StakingFee},
	}
	for _, c := range credits {
		if _, err := view.Credit(c.id, c.amount); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// computeDistribution splits fee by the configured shares. Each share is
// floored independently; whatever the floors leave over is reported as Dust
// and not credited anywhere.
func computeDistribution(fee uint64, fc *types.FeeConfig) (*types.FeesDistributed, error) {
	res := &types.FeesDistributed{TotalFee: fee}

	var err error
	if res.ProtocolFee, err = types.Split(fee, fc.ProtocolBps); err != nil {
		return nil, err
	}
	if res.CreatorFee, err = types.Split(fee, fc.CreatorBps); err != nil {
		return nil, err
	}
	if res.BuybackFee, err = types.Split(fee, fc.BuybackBps); err != nil {
		return nil, err
	}
	if res.StakingFee, err = types.Split(fee, fc.StakingBps); err != nil {
		return nil, err
	}

	// Shares sum to 10000 bps, so the floors can only undershoot fee.
	distributed := uint64(0)
	for _, share := range []uint64{res.ProtocolFee, res.CreatorFee, res.BuybackFee, res.StakingFee} {
		if distributed, err = types.CheckedAdd(distributed, share); err != nil {
			return nil, err
		}
	}
	if distributed > fee {
		return nil, errors.Errorf("distributed %v exceeds fee %v", distributed, fee)
	}
	res.Dust = fee - distributed
	return res, nil
}
