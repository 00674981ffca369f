package types

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/clawnch/ledger/common"
)

//
// ------- Protocol accounts ------- //
//

// Accounts names the protocol-wide entries by explicit, host-supplied ids.
type Accounts struct {
	Config      AccountID // Fee configuration entry
	FeeVault    AccountID // Receives the protocol share
	Treasury    AccountID // Receives the buyback share, custodies stake, pays rewards
	StakingPool AccountID // Receives the staking share; the treasury when zero
	Mint        AccountID // Token mint held by the treasury
}

// StakingPoolOrTreasury resolves the account credited with the staking share.
func (a Accounts) StakingPoolOrTreasury() AccountID {
	if a.StakingPool.IsZero() {
		return a.Treasury
	}
	return a.StakingPool
}

// DefaultAccounts derives the protocol ids from the mint the way a program
// would derive its singleton addresses.
func DefaultAccounts(mint AccountID) Accounts {
	return Accounts{
		Config:   DeriveAccountID([]byte("config")),
		FeeVault: DeriveAccountID([]byte("fee_vault")),
		Treasury: DeriveAccountID([]byte("treasury"), mint[:]),
		Mint:     mint,
	}
}

//
// ------- Vault records ------- //
//

// FeeVault collects the protocol share. Its balance lives in the vault ledger
// under the fee vault id and only decreases through an explicit withdrawal.
type FeeVault struct {
	Authority AccountID
}

// TokenTreasury holds tokens for buybacks and staking payouts. Its balance lives
// in the vault ledger under the treasury id.
type TokenTreasury struct {
	Authority AccountID
	Mint      AccountID
}

// StakingVault tracks the stake of a single user. StakedAmount == 0 means the
// vault is empty.
type StakingVault struct {
	Owner         AccountID
	StakedAmount  uint64
	LastUpdate    int64  // Unix seconds of the last settlement
	PendingReward uint64 // Reward settled by a re-stake and not paid out yet
}

// NewStakingVault creates an empty vault for owner.
func NewStakingVault(owner AccountID) *StakingVault {
	return &StakingVault{Owner: owner}
}

// IsEmpty reports whether nothing is staked.
func (sv *StakingVault) IsEmpty() bool {
	return sv.StakedAmount == 0
}

func (sv *StakingVault) String() string {
	if sv == nil {
		return "nil-StakingVault"
	}
	return fmt.Sprintf("StakingVault{%v staked:%v lastUpdate:%v pending:%v}",
		sv.Owner.Hex(), sv.StakedAmount, sv.LastUpdate, sv.PendingReward)
}

// rlp has no signed integers; the timestamp travels as its two's complement bits.
type stakingVaultRLP struct {
	Owner         AccountID
	StakedAmount  uint64
	LastUpdate    uint64
	PendingReward uint64
}

// EncodeRLP implements rlp.Encoder.
func (sv *StakingVault) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &stakingVaultRLP{
		Owner:         sv.Owner,
		StakedAmount:  sv.StakedAmount,
		LastUpdate:    uint64(sv.LastUpdate),
		PendingReward: sv.PendingReward,
	})
}

// DecodeRLP implements rlp.Decoder.
func (sv *StakingVault) DecodeRLP(s *rlp.Stream) error {
	var raw stakingVaultRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	sv.Owner = raw.Owner
	sv.StakedAmount = raw.StakedAmount
	sv.LastUpdate = int64(raw.LastUpdate)
	sv.PendingReward = raw.PendingReward
	return nil
}

//
// ------- Query views ------- //
//

type FeeVaultInfo struct {
	ID        AccountID         `json:"id"`
	Authority AccountID         `json:"authority"`
	Balance   common.JSONUint64 `json:"balance"`
}

type TreasuryInfo struct {
	ID        AccountID         `json:"id"`
	Authority AccountID         `json:"authority"`
	Mint      AccountID         `json:"mint"`
	Balance   common.JSONUint64 `json:"balance"`
}

type StakingVaultInfo struct {
	Vault         AccountID         `json:"vault"`
	Owner         AccountID         `json:"owner"`
	StakedAmount  common.JSONUint64 `json:"staked_amount"`
	LastUpdate    int64             `json:"last_update"`
	PendingReward common.JSONUint64 `json:"pending_reward"`
}

// NewStakingVaultInfo converts a vault record into its query view.
func NewStakingVaultInfo(sv *StakingVault) *StakingVaultInfo {
	return &StakingVaultInfo{
		Vault:         StakingVaultID(sv.Owner),
		Owner:         sv.Owner,
		StakedAmount:  common.JSONUint64(sv.StakedAmount),
		LastUpdate:    sv.LastUpdate,
		PendingReward: common.JSONUint64(sv.PendingReward),
	}
}
