package query

import (
	"github.com/spf13/cobra"
)

var (
	accountFlag string
	userFlag    string
)

// QueryCmd represents the query command
var QueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the ledger state",
}

func init() {
	QueryCmd.AddCommand(accountsCmd)
	QueryCmd.AddCommand(configCmd)
	QueryCmd.AddCommand(feeVaultCmd)
	QueryCmd.AddCommand(treasuryCmd)
	QueryCmd.AddCommand(balanceCmd)
	QueryCmd.AddCommand(vaultCmd)
	QueryCmd.AddCommand(vaultsCmd)
	QueryCmd.AddCommand(versionCmd)
}
