package execution

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/clawnch/ledger/common/util"
	"github.com/clawnch/ledger/core"
	st "github.com/clawnch/ledger/ledger/state"
	"github.com/clawnch/ledger/ledger/types"
)

var logger = util.GetLoggerForModule("execution")

//
// TxExecutor defines the interface of the transaction executors
//
type TxExecutor interface {
	sanityCheck(view *st.StoreView, transaction types.Tx) error
	process(view *st.StoreView, transaction types.Tx) (types.Event, error)
}

//
// Executor executes the transactions
//
type Executor struct {
	state *st.LedgerState

	initConfigTxExec        *InitConfigTxExecutor
	updateConfigTxExec      *UpdateConfigTxExecutor
	transferAuthorityTxExec *TransferAuthorityTxExecutor
	distributeFeesTxExec    *DistributeFeesTxExecutor
	executeBuybackTxExec    *ExecuteBuybackTxExecutor
	withdrawFeesTxExec      *WithdrawFeesTxExecutor
	depositTxExec           *DepositTxExecutor
	stakeTxExec             *StakeTxExecutor
	unstakeTxExec           *UnstakeTxExecutor
}

// NewExecutor creates a new instance of Executor
func NewExecutor(state *st.LedgerState, accounts types.Accounts, clock core.Clock, authorizer core.Authorizer) *Executor {
	if authorizer == nil {
		authorizer = core.AllowAll
	}
	auth := &authority{accounts: accounts, authorizer: authorizer}
	executor := &Executor{
		state:                   state,
		initConfigTxExec:        NewInitConfigTxExecutor(accounts),
		updateConfigTxExec:      NewUpdateConfigTxExecutor(accounts, auth),
		transferAuthorityTxExec: NewTransferAuthorityTxExecutor(accounts, auth),
		distributeFeesTxExec:    NewDistributeFeesTxExecutor(accounts),
		executeBuybackTxExec:    NewExecuteBuybackTxExecutor(accounts, auth),
		withdrawFeesTxExec:      NewWithdrawFeesTxExecutor(accounts, auth),
		depositTxExec:           NewDepositTxExecutor(),
		stakeTxExec:             NewStakeTxExecutor(accounts, clock),
		unstakeTxExec:           NewUnstakeTxExecutor(accounts, clock),
	}

	return executor
}

// ExecuteTx runs the tx inside a single ledger transaction. Either every write
// of the tx is committed and its event returned, or the ledger is left untouched
// and the error is returned.
func (exec *Executor) ExecuteTx(tx types.Tx) (types.Event, error) {
	txExecutor := exec.getTxExecutor(tx)
	if txExecutor == nil {
		return nil, errors.Errorf("unknown tx type: %T", tx)
	}

	if logger.Logger.IsLevelEnabled(log.DebugLevel) {
		logger.Debugf("Executing tx: %v", spew.Sdump(tx))
	}

	var event types.Event
	err := exec.state.Update(func(view *st.StoreView) error {
		if err := txExecutor.sanityCheck(view, tx); err != nil {
			return err
		}
		var err error
		event, err = txExecutor.process(view, tx)
		return err
	})
	if err != nil {
		logger.Debugf("Tx %v failed: %v", tx, err)
		return nil, err
	}
	return event, nil
}

func (exec *Executor) getTxExecutor(tx types.Tx) TxExecutor {
	var txExecutor TxExecutor
	switch tx.(type) {
	case *types.InitConfigTx:
		txExecutor = exec.initConfigTxExec
	case *types.UpdateConfigTx:
		txExecutor = exec.updateConfigTxExec
	case *types.TransferAuthorityTx:
		txExecutor = exec.transferAuthorityTxExec
	case *types.DistributeFeesTx:
		txExecutor = exec.distributeFeesTxExec
	case *types.ExecuteBuybackTx:
		txExecutor = exec.executeBuybackTxExec
	case *types.WithdrawFeesTx:
		txExecutor = exec.withdrawFeesTxExec
	case *types.DepositTx:
		txExecutor = exec.depositTxExec
	case *types.StakeTx:
		txExecutor = exec.stakeTxExec
	case *types.UnstakeTx:
		txExecutor = exec.unstakeTxExec
	default:
		txExecutor = nil
	}
	return txExecutor
}
