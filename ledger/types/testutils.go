package types

// Helper functions for testing

// TestAccountID derives a readable, stable id for use in tests.
func TestAccountID(name string) AccountID {
	return DeriveAccountID([]byte("test"), []byte(name))
}

// TestAccounts returns protocol ids with a dedicated staking pool so tests can
// tell pool credits apart from treasury credits.
func TestAccounts() Accounts {
	accounts := DefaultAccounts(TestAccountID("mint"))
	accounts.StakingPool = TestAccountID("staking_pool")
	return accounts
}
