package rpc

import (
	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/ledger/types"
)

// Callers are taken at their word: the node trusts its RPC clients, and the
// ledger's authorizer decides which callers may act as the authority.

// ------------------------------- InitializeConfig -----------------------------------

type ConfigArgs struct {
	Caller      types.AccountID `json:"caller"`
	ProtocolBps uint16          `json:"protocol_bps"`
	CreatorBps  uint16          `json:"creator_bps"`
	BuybackBps  uint16          `json:"buyback_bps"`
	StakingBps  uint16          `json:"staking_bps"`
}

func (t *ClawnchRPCService) InitializeConfig(args *ConfigArgs, result *FeeConfigResult) (err error) {
	defer t.observe("InitializeConfig", &err)()

	fc, err := t.ledger.InitializeConfig(args.Caller, args.ProtocolBps, args.CreatorBps, args.BuybackBps, args.StakingBps)
	if err != nil {
		return err
	}
	result.set(fc)
	return nil
}

// ------------------------------- UpdateConfig -----------------------------------

func (t *ClawnchRPCService) UpdateConfig(args *ConfigArgs, result *FeeConfigResult) (err error) {
	defer t.observe("UpdateConfig", &err)()

	fc, err := t.ledger.UpdateConfig(args.Caller, args.ProtocolBps, args.CreatorBps, args.BuybackBps, args.StakingBps)
	if err != nil {
		return err
	}
	result.set(fc)
	return nil
}

// ------------------------------- TransferAuthority -----------------------------------

type TransferAuthorityArgs struct {
	Caller       types.AccountID `json:"caller"`
	NewAuthority types.AccountID `json:"new_authority"`
}

type TransferAuthorityResult struct {
	*types.AuthorityTransferred
}

func (t *ClawnchRPCService) TransferAuthority(args *TransferAuthorityArgs, result *TransferAuthorityResult) (err error) {
	defer t.observe("TransferAuthority", &err)()

	result.AuthorityTransferred, err = t.ledger.TransferAuthority(args.Caller, args.NewAuthority)
	return err
}

// ------------------------------- DistributeFees -----------------------------------

type DistributeFeesArgs struct {
	FeeAmount common.JSONUint64 `json:"fee_amount"`
	Creator   types.AccountID   `json:"creator"`
	Payer     types.AccountID   `json:"payer"` // Optional, debited the distributed total
}

type DistributeFeesResult struct {
	*types.FeesDistributed
}

func (t *ClawnchRPCService) DistributeFees(args *DistributeFeesArgs, result *DistributeFeesResult) (err error) {
	defer t.observe("DistributeFees", &err)()

	if args.Creator.IsZero() {
		return invalidParams("creator must be specified")
	}
	if args.Payer.IsZero() {
		result.FeesDistributed, err = t.ledger.DistributeFees(uint64(args.FeeAmount), args.Creator)
	} else {
		result.FeesDistributed, err = t.ledger.DistributeFeesFrom(args.Payer, args.Creator, uint64(args.FeeAmount))
	}
	return err
}

// ------------------------------- ExecuteBuyback -----------------------------------

type VaultSpendArgs struct {
	Caller    types.AccountID   `json:"caller"`
	Recipient types.AccountID   `json:"recipient"`
	Amount    common.JSONUint64 `json:"amount"`
}

type ExecuteBuybackResult struct {
	*types.BuybackExecuted
}

func (t *ClawnchRPCService) ExecuteBuyback(args *VaultSpendArgs, result *ExecuteBuybackResult) (err error) {
	defer t.observe("ExecuteBuyback", &err)()

	result.BuybackExecuted, err = t.ledger.ExecuteBuyback(args.Caller, args.Recipient, uint64(args.Amount))
	return err
}

// ------------------------------- WithdrawFees -----------------------------------

type WithdrawFeesResult struct {
	*types.FeesWithdrawn
}

func (t *ClawnchRPCService) WithdrawFees(args *VaultSpendArgs, result *WithdrawFeesResult) (err error) {
	defer t.observe("WithdrawFees", &err)()

	if args.Recipient.IsZero() {
		return invalidParams("recipient must be specified")
	}
	result.FeesWithdrawn, err = t.ledger.WithdrawFees(args.Caller, args.Recipient, uint64(args.Amount))
	return err
}

// ------------------------------- Deposit -----------------------------------

type DepositArgs struct {
	Account types.AccountID   `json:"account"`
	Amount  common.JSONUint64 `json:"amount"`
}

type DepositResult struct {
	*types.Deposited
}

func (t *ClawnchRPCService) Deposit(args *DepositArgs, result *DepositResult) (err error) {
	defer t.observe("Deposit", &err)()

	if args.Account.IsZero() {
		return invalidParams("account must be specified")
	}
	result.Deposited, err = t.ledger.Deposit(args.Account, uint64(args.Amount))
	return err
}

// ------------------------------- Stake -----------------------------------

type StakeArgs struct {
	User   types.AccountID   `json:"user"`
	Amount common.JSONUint64 `json:"amount"`
}

type StakeResult struct {
	*types.TokensStaked
}

func (t *ClawnchRPCService) Stake(args *StakeArgs, result *StakeResult) (err error) {
	defer t.observe("Stake", &err)()

	if args.User.IsZero() {
		return invalidParams("user must be specified")
	}
	result.TokensStaked, err = t.ledger.Stake(args.User, uint64(args.Amount))
	return err
}

// ------------------------------- Unstake -----------------------------------

type UnstakeArgs struct {
	User types.AccountID `json:"user"`
}

type UnstakeResult struct {
	*types.TokensUnstaked
}

func (t *ClawnchRPCService) Unstake(args *UnstakeArgs, result *UnstakeResult) (err error) {
	defer t.observe("Unstake", &err)()

	if args.User.IsZero() {
		return invalidParams("user must be specified")
	}
	result.TokensUnstaked, err = t.ledger.Unstake(args.User)
	return err
}
