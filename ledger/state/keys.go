package state

import "github.com/clawnch/ledger/ledger/types"

//
// ------------------------- Ledger State Keys -------------------------
//

// FeeConfigKey constructs the state key for the fee configuration entry
func FeeConfigKey(id types.AccountID) []byte {
	return append([]byte("ls/cfg/"), id[:]...)
}

// FeeVaultKey constructs the state key for the fee vault record
func FeeVaultKey(id types.AccountID) []byte {
	return append([]byte("ls/fv/"), id[:]...)
}

// TreasuryKey constructs the state key for the treasury record
func TreasuryKey(id types.AccountID) []byte {
	return append([]byte("ls/tr/"), id[:]...)
}

// StakingVaultKeyPrefix returns the prefix shared by all staking vaults
func StakingVaultKeyPrefix() []byte {
	return []byte("ls/sv/")
}

// StakingVaultKey constructs the state key for the staking vault of the given user
func StakingVaultKey(user types.AccountID) []byte {
	return append(StakingVaultKeyPrefix(), user[:]...)
}

// BalanceKey constructs the state key for the token balance of an account
func BalanceKey(id types.AccountID) []byte {
	return append([]byte("ls/b/"), id[:]...)
}

// TotalStakedKey constructs the state key for the principal held by all staking vaults
func TotalStakedKey() []byte {
	return []byte("ls/ts")
}
