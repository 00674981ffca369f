package query

import (
	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/cmd/clawnchcli/cmd/utils"
	"github.com/clawnch/ledger/rpc"
)

// balanceCmd represents the balance command.
// Example:
//		clawnchcli query balance --account=0x2e833968e5bb786ae419c4d13189fb081cc43bab
var balanceCmd = &cobra.Command{
	Use:     "balance",
	Short:   "Get the token balance of an account",
	Example: `clawnchcli query balance --account=0x2e833968e5bb786ae419c4d13189fb081cc43bab`,
	Run:     doBalanceCmd,
}

func doBalanceCmd(cmd *cobra.Command, args []string) {
	utils.Call("get balance", "clawnch.GetBalance", rpc.GetBalanceArgs{
		Account: utils.ParseAccountID("account", accountFlag),
	})
}

func init() {
	balanceCmd.Flags().StringVar(&accountFlag, "account", "", "Account id")
	balanceCmd.MarkFlagRequired("account")
}
