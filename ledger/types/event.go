package types

// Event is a structured record produced by a committed ledger operation, for
// delivery to an external observer or indexer.
type Event interface {
	EventName() string
}

const (
	EventConfigInitialized = "ConfigInitialized"
	EventConfigUpdated     = "ConfigUpdated"
	EventAuthorityChanged  = "AuthorityTransferred"
	EventFeesDistributed   = "FeesDistributed"
	EventBuybackExecuted   = "BuybackExecuted"
	EventFeesWithdrawn     = "FeesWithdrawn"
	EventDeposited         = "Deposited"
	EventTokensStaked      = "TokensStaked"
	EventTokensUnstaked    = "TokensUnstaked"
)

type ConfigInitialized struct {
	Authority      AccountID `json:"authority"`
	ProtocolFeeBps uint16    `json:"protocol_fee_bps"`
	CreatorFeeBps  uint16    `json:"creator_fee_bps"`
	BuybackFeeBps  uint16    `json:"buyback_fee_bps"`
	StakingFeeBps  uint16    `json:"staking_fee_bps"`
}

func (_ *ConfigInitialized) EventName() string { return EventConfigInitialized }

type ConfigUpdated struct {
	Authority      AccountID `json:"authority"`
	ProtocolFeeBps uint16    `json:"protocol_fee_bps"`
	CreatorFeeBps  uint16    `json:"creator_fee_bps"`
	BuybackFeeBps  uint16    `json:"buyback_fee_bps"`
	StakingFeeBps  uint16    `json:"staking_fee_bps"`
}

func (_ *ConfigUpdated) EventName() string { return EventConfigUpdated }

type AuthorityTransferred struct {
	PreviousAuthority AccountID `json:"previous_authority"`
	NewAuthority      AccountID `json:"new_authority"`
}

func (_ *AuthorityTransferred) EventName() string { return EventAuthorityChanged }

// FeesDistributed doubles as the return value of a distribution.
type FeesDistributed struct {
	TotalFee    uint64    `json:"total_fee"`
	ProtocolFee uint64    `json:"protocol_fee"`
	CreatorFee  uint64    `json:"creator_fee"`
	BuybackFee  uint64    `json:"buyback_fee"`
	StakingFee  uint64    `json:"staking_fee"`
	Dust        uint64    `json:"dust"`
	FeeVault    AccountID `json:"fee_vault"`
	Creator     AccountID `json:"creator"`
	Payer       AccountID `json:"payer"`
}

func (_ *FeesDistributed) EventName() string { return EventFeesDistributed }

// Distributed is the sum of the four buckets, i.e. TotalFee - Dust.
func (e *FeesDistributed) Distributed() uint64 {
	return e.ProtocolFee + e.CreatorFee + e.BuybackFee + e.StakingFee
}

type BuybackExecuted struct {
	Treasury  AccountID `json:"treasury"`
	Amount    uint64    `json:"amount"`
	Authority AccountID `json:"authority"`
	Recipient AccountID `json:"recipient"`
}

func (_ *BuybackExecuted) EventName() string { return EventBuybackExecuted }

type FeesWithdrawn struct {
	FeeVault  AccountID `json:"fee_vault"`
	Amount    uint64    `json:"amount"`
	Authority AccountID `json:"authority"`
	Recipient AccountID `json:"recipient"`
}

func (_ *FeesWithdrawn) EventName() string { return EventFeesWithdrawn }

type Deposited struct {
	Account AccountID `json:"account"`
	Amount  uint64    `json:"amount"`
	Balance uint64    `json:"balance"`
}

func (_ *Deposited) EventName() string { return EventDeposited }

type TokensStaked struct {
	User          AccountID `json:"user"`
	Amount        uint64    `json:"amount"`
	Vault         AccountID `json:"vault"`
	StakedAmount  uint64    `json:"staked_amount"`
	SettledReward uint64    `json:"settled_reward"`
}

func (_ *TokensStaked) EventName() string { return EventTokensStaked }

// TokensUnstaked doubles as the return value of an unstake.
type TokensUnstaked struct {
	User      AccountID `json:"user"`
	Principal uint64    `json:"principal"`
	Reward    uint64    `json:"reward"`
	Vault     AccountID `json:"vault"`
}

func (_ *TokensUnstaked) EventName() string { return EventTokensUnstaked }

// Payout is the total transferred from the treasury to the user.
func (e *TokensUnstaked) Payout() uint64 {
	return e.Principal + e.Reward
}
