package types

import (
	"fmt"
)

/*
Tx (Transaction) is an atomic operation on the ledger state.

Transaction Types:
 - InitConfigTx         Create the fee configuration, fee vault and treasury records
 - UpdateConfigTx       Replace the fee split
 - TransferAuthorityTx  Hand the configuration, fee vault and treasury to a new authority
 - DistributeFeesTx     Split a trading fee among the four destinations
 - ExecuteBuybackTx     Spend treasury tokens on a buyback
 - WithdrawFeesTx       Withdraw protocol fees from the fee vault
 - DepositTx            Credit an external balance (host token bridge)
 - StakeTx              Move tokens from a user into their staking vault
 - UnstakeTx            Empty a staking vault and pay principal plus reward
*/
type Tx interface {
	AssertIsTx()
}

//-----------------------------------------------------------------------------

type InitConfigTx struct {
	Caller      AccountID
	ProtocolBps uint16
	CreatorBps  uint16
	BuybackBps  uint16
	StakingBps  uint16
}

func (_ *InitConfigTx) AssertIsTx() {}

func (tx *InitConfigTx) String() string {
	return fmt.Sprintf("InitConfigTx{%v %v/%v/%v/%v}",
		tx.Caller, tx.ProtocolBps, tx.CreatorBps, tx.BuybackBps, tx.StakingBps)
}

//-----------------------------------------------------------------------------

type UpdateConfigTx struct {
	Caller      AccountID
	ProtocolBps uint16
	CreatorBps  uint16
	BuybackBps  uint16
	StakingBps  uint16
}

func (_ *UpdateConfigTx) AssertIsTx() {}

func (tx *UpdateConfigTx) String() string {
	return fmt.Sprintf("UpdateConfigTx{%v %v/%v/%v/%v}",
		tx.Caller, tx.ProtocolBps, tx.CreatorBps, tx.BuybackBps, tx.StakingBps)
}

//-----------------------------------------------------------------------------

type TransferAuthorityTx struct {
	Caller       AccountID
	NewAuthority AccountID
}

func (_ *TransferAuthorityTx) AssertIsTx() {}

func (tx *TransferAuthorityTx) String() string {
	return fmt.Sprintf("TransferAuthorityTx{%v -> %v}", tx.Caller, tx.NewAuthority)
}

//-----------------------------------------------------------------------------

type DistributeFeesTx struct {
	FeeAmount uint64
	Creator   AccountID
	Payer     AccountID // Debited the distributed total when set; the fee enters from outside otherwise
}

func (_ *DistributeFeesTx) AssertIsTx() {}

func (tx *DistributeFeesTx) String() string {
	return fmt.Sprintf("DistributeFeesTx{%v creator:%v}", tx.FeeAmount, tx.Creator)
}

//-----------------------------------------------------------------------------

type ExecuteBuybackTx struct {
	Caller    AccountID
	Recipient AccountID // Receives the spent tokens, e.g. a liquidity pool or burn account
	Amount    uint64
}

func (_ *ExecuteBuybackTx) AssertIsTx() {}

func (tx *ExecuteBuybackTx) String() string {
	return fmt.Sprintf("ExecuteBuybackTx{%v %v -> %v}", tx.Caller, tx.Amount, tx.Recipient)
}

//-----------------------------------------------------------------------------

type WithdrawFeesTx struct {
	Caller    AccountID
	Recipient AccountID
	Amount    uint64
}

func (_ *WithdrawFeesTx) AssertIsTx() {}

func (tx *WithdrawFeesTx) String() string {
	return fmt.Sprintf("WithdrawFeesTx{%v %v -> %v}", tx.Caller, tx.Amount, tx.Recipient)
}

//-----------------------------------------------------------------------------

type DepositTx struct {
	Account AccountID
	Amount  uint64
}

func (_ *DepositTx) AssertIsTx() {}

func (tx *DepositTx) String() string {
	return fmt.Sprintf("DepositTx{%v %v}", tx.Account, tx.Amount)
}

//-----------------------------------------------------------------------------

type StakeTx struct {
	User   AccountID
	Amount uint64
}

func (_ *StakeTx) AssertIsTx() {}

func (tx *StakeTx) String() string {
	return fmt.Sprintf("StakeTx{%v %v}", tx.User, tx.Amount)
}

//-----------------------------------------------------------------------------

type UnstakeTx struct {
	User AccountID
}

func (_ *UnstakeTx) AssertIsTx() {}

func (tx *UnstakeTx) String() string {
	return fmt.Sprintf("UnstakeTx{%v}", tx.User)
}
