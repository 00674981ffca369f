package rpc

import (
	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/version"
)

// ------------------------------- GetVersion -----------------------------------

type GetVersionArgs struct {
}

type GetVersionResult struct {
	Version   string `json:"version"`
	GitHash   string `json:"git_hash"`
	Timestamp string `json:"timestamp"`
}

func (t *ClawnchRPCService) GetVersion(args *GetVersionArgs, result *GetVersionResult) (err error) {
	result.Version = version.Version
	result.GitHash = version.GitHash
	result.Timestamp = version.Timestamp
	return nil
}

// ------------------------------- GetAccounts -----------------------------------

type GetAccountsArgs struct {
}

type GetAccountsResult struct {
	Config      types.AccountID `json:"config"`
	FeeVault    types.AccountID `json:"fee_vault"`
	Treasury    types.AccountID `json:"treasury"`
	StakingPool types.AccountID `json:"staking_pool"`
	Mint        types.AccountID `json:"mint"`
}

func (t *ClawnchRPCService) GetAccounts(args *GetAccountsArgs, result *GetAccountsResult) (err error) {
	accounts := t.ledger.Accounts()
	result.Config = accounts.Config
	result.FeeVault = accounts.FeeVault
	result.Treasury = accounts.Treasury
	result.StakingPool = accounts.StakingPoolOrTreasury()
	result.Mint = accounts.Mint
	return nil
}

// ------------------------------- GetFeeConfig -----------------------------------

type GetFeeConfigArgs struct {
}

type FeeConfigResult struct {
	Authority   types.AccountID `json:"authority"`
	ProtocolBps uint16          `json:"protocol_bps"`
	CreatorBps  uint16          `json:"creator_bps"`
	BuybackBps  uint16          `json:"buyback_bps"`
	StakingBps  uint16          `json:"staking_bps"`
}

func (result *FeeConfigResult) set(fc *types.FeeConfig) {
	result.Authority = fc.Authority
	result.ProtocolBps = fc.ProtocolBps
	result.CreatorBps = fc.CreatorBps
	result.BuybackBps = fc.BuybackBps
	result.StakingBps = fc.StakingBps
}

func (t *ClawnchRPCService) GetFeeConfig(args *GetFeeConfigArgs, result *FeeConfigResult) (err error) {
	defer t.observe("GetFeeConfig", &err)()

	fc, err := t.ledger.GetFeeConfig()
	if err != nil {
		return err
	}
	result.set(fc)
	return nil
}

// ------------------------------- GetFeeVault -----------------------------------

type GetFeeVaultArgs struct {
}

type GetFeeVaultResult struct {
	*types.FeeVaultInfo
}

func (t *ClawnchRPCService) GetFeeVault(args *GetFeeVaultArgs, result *GetFeeVaultResult) (err error) {
	defer t.observe("GetFeeVault", &err)()

	result.FeeVaultInfo, err = t.ledger.GetFeeVault()
	return err
}

// ------------------------------- GetTreasury -----------------------------------

type GetTreasuryArgs struct {
}

type GetTreasuryResult struct {
	*types.TreasuryInfo
}

func (t *ClawnchRPCService) GetTreasury(args *GetTreasuryArgs, result *GetTreasuryResult) (err error) {
	defer t.observe("GetTreasury", &err)()

	result.TreasuryInfo, err = t.ledger.GetTreasury()
	return err
}

// ------------------------------- GetBalance -----------------------------------

type GetBalanceArgs struct {
	Account types.AccountID `json:"account"`
}

type GetBalanceResult struct {
	Account types.AccountID   `json:"account"`
	Balance common.JSONUint64 `json:"balance"`
}

func (t *ClawnchRPCService) GetBalance(args *GetBalanceArgs, result *GetBalanceResult) (err error) {
	defer t.observe("GetBalance", &err)()

	balance, err := t.ledger.GetBalance(args.Account)
	if err != nil {
		return err
	}
	result.Account = args.Account
	result.Balance = common.JSONUint64(balance)
	return nil
}

// ------------------------------- GetStakingVault -----------------------------------

type GetStakingVaultArgs struct {
	User types.AccountID `json:"user"`
}

type GetStakingVaultResult struct {
	*types.StakingVaultInfo
	AccruedReward common.JSONUint64 `json:"accrued_reward"` // What an unstake would pay as reward now
}

func (t *ClawnchRPCService) GetStakingVault(args *GetStakingVaultArgs, result *GetStakingVaultResult) (err error) {
	defer t.observe("GetStakingVault", &err)()

	if args.User.IsZero() {
		return invalidParams("user must be specified")
	}
	if result.StakingVaultInfo, err = t.ledger.GetStakingVault(args.User); err != nil {
		return err
	}
	reward, err := t.ledger.PendingReward(args.User)
	if err != nil {
		return err
	}
	result.AccruedReward = common.JSONUint64(reward)
	return nil
}

// ------------------------------- ListStakingVaults -----------------------------------

type ListStakingVaultsArgs struct {
}

type ListStakingVaultsResult struct {
	Vaults      []*types.StakingVaultInfo `json:"vaults"`
	TotalStaked common.JSONUint64         `json:"total_staked"`
}

func (t *ClawnchRPCService) ListStakingVaults(args *ListStakingVaultsArgs, result *ListStakingVaultsResult) (err error) {
	defer t.observe("ListStakingVaults", &err)()

	if result.Vaults, err = t.ledger.ListStakingVaults(); err != nil {
		return err
	}
	total, err := t.ledger.TotalStaked()
	if err != nil {
		return err
	}
	result.TotalStaked = common.JSONUint64(total)
	return nil
}
