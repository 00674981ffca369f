package query

import (
	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/cmd/clawnchcli/cmd/utils"
	"github.com/clawnch/ledger/rpc"
)

// accountsCmd represents the accounts command.
// Example:
//		clawnchcli query accounts
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Get the protocol account ids",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("get protocol accounts", "clawnch.GetAccounts", rpc.GetAccountsArgs{})
	},
}

// configCmd represents the config command.
// Example:
//		clawnchcli query config
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get the fee configuration",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("get fee config", "clawnch.GetFeeConfig", rpc.GetFeeConfigArgs{})
	},
}

// versionCmd represents the version command.
// Example:
//		clawnchcli query version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the version of the remote node",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("get version", "clawnch.GetVersion", rpc.GetVersionArgs{})
	},
}
