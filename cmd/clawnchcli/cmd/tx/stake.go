package tx

import (
	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/cmd/clawnchcli/cmd/utils"
	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/rpc"
)

// depositCmd represents the deposit command
// Example:
//		clawnchcli tx deposit --account=0x2e833968e5bb786ae419c4d13189fb081cc43bab --amount=1000
var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Credit tokens bridged in from outside the ledger",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("deposit", "clawnch.Deposit", rpc.DepositArgs{
			Account: utils.ParseAccountID("account", accountFlag),
			Amount:  common.JSONUint64(amountFlag),
		})
	},
}

// stakeCmd represents the stake command
// Example:
//		clawnchcli tx stake --user=0x2e833968e5bb786ae419c4d13189fb081cc43bab --amount=1000
var stakeCmd = &cobra.Command{
	Use:     "stake",
	Short:   "Stake tokens",
	Example: `clawnchcli tx stake --user=0x2e833968e5bb786ae419c4d13189fb081cc43bab --amount=1000`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("stake", "clawnch.Stake", rpc.StakeArgs{
			User:   utils.ParseAccountID("user", accountFlag),
			Amount: common.JSONUint64(amountFlag),
		})
	},
}

// unstakeCmd represents the unstake command
// Example:
//		clawnchcli tx unstake --user=0x2e833968e5bb786ae419c4d13189fb081cc43bab
var unstakeCmd = &cobra.Command{
	Use:   "unstake",
	Short: "Withdraw the whole stake with its reward",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("unstake", "clawnch.Unstake", rpc.UnstakeArgs{
			User: utils.ParseAccountID("user", accountFlag),
		})
	},
}

func init() {
	depositCmd.Flags().StringVar(&accountFlag, "account", "", "Receiving account")
	depositCmd.Flags().Uint64Var(&amountFlag, "amount", 0, "Amount")
	depositCmd.MarkFlagRequired("account")
	depositCmd.MarkFlagRequired("amount")

	stakeCmd.Flags().StringVar(&accountFlag, "user", "", "Staking user")
	stakeCmd.Flags().Uint64Var(&amountFlag, "amount", 0, "Amount")
	stakeCmd.MarkFlagRequired("user")
	stakeCmd.MarkFlagRequired("amount")

	unstakeCmd.Flags().StringVar(&accountFlag, "user", "", "Staking user")
	unstakeCmd.MarkFlagRequired("user")
}
