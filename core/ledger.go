package core

import (
	"github.com/clawnch/ledger/ledger/types"
)

//
// Ledger defines the interface of the ledger
//
type Ledger interface {
	Accounts() types.Accounts

	InitializeConfig(caller types.AccountID, protocolBps, creatorBps, buybackBps, stakingBps uint16) (*types.FeeConfig, error)
	UpdateConfig(caller types.AccountID, protocolBps, creatorBps, buybackBps, stakingBps uint16) (*types.FeeConfig, error)
	TransferAuthority(caller, newAuthority types.AccountID) (*types.AuthorityTransferred, error)
	DistributeFees(feeAmount uint64, creator types.AccountID) (*types.FeesDistributed, error)
	DistributeFeesFrom(payer, creator types.AccountID, feeAmount uint64) (*types.FeesDistributed, error)
	ExecuteBuyback(caller, recipient types.AccountID, amount uint64) (*types.BuybackExecuted, error)
	WithdrawFees(caller, recipient types.AccountID, amount uint64) (*types.FeesWithdrawn, error)
	Deposit(account types.AccountID, amount uint64) (*types.Deposited, error)
	Stake(user types.AccountID, amount uint64) (*types.TokensStaked, error)
	Unstake(user types.AccountID) (*types.TokensUnstaked, error)

	GetFeeConfig() (*types.FeeConfig, error)
	GetFeeVault() (*types.FeeVaultInfo, error)
	GetTreasury() (*types.TreasuryInfo, error)
	GetStakingVault(user types.AccountID) (*types.StakingVaultInfo, error)
	GetBalance(account types.AccountID) (uint64, error)
	ListStakingVaults() ([]*types.StakingVaultInfo, error)
	TotalStaked() (uint64, error)
	PendingReward(user types.AccountID) (uint64, error)
}
