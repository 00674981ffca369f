package tx

import (
	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/cmd/clawnchcli/cmd/utils"
	"github.com/clawnch/ledger/common"
	"github.com/clawnch/ledger/rpc"
)

// distributeCmd represents the distribute command
// Example:
//		clawnchcli tx distribute --amount=10000 --creator=0x9f1233798e905e173560071255140b4a8abd3ec6
var distributeCmd = &cobra.Command{
	Use:     "distribute",
	Short:   "Split a trading fee among the protocol, creator, buyback and staking",
	Example: `clawnchcli tx distribute --amount=10000 --creator=0x9f1233798e905e173560071255140b4a8abd3ec6`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("distribute fees", "clawnch.DistributeFees", rpc.DistributeFeesArgs{
			FeeAmount: common.JSONUint64(amountFlag),
			Creator:   utils.ParseAccountID("creator", creatorFlag),
			Payer:     utils.ParseAccountID("payer", payerFlag),
		})
	},
}

// buybackCmd represents the buyback command
var buybackCmd = &cobra.Command{
	Use:   "buyback",
	Short: "Spend treasury tokens on a buyback; omit --recipient to burn",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("execute buyback", "clawnch.ExecuteBuyback", vaultSpendArgs())
	},
}

// withdrawCmd represents the withdraw command
var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw protocol fees from the fee vault",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("withdraw fees", "clawnch.WithdrawFees", vaultSpendArgs())
	},
}

func vaultSpendArgs() rpc.VaultSpendArgs {
	return rpc.VaultSpendArgs{
		Caller:    utils.ParseAccountID("caller", callerFlag),
		Recipient: utils.ParseAccountID("recipient", recipientFlag),
		Amount:    common.JSONUint64(amountFlag),
	}
}

func init() {
	distributeCmd.Flags().Uint64Var(&amountFlag, "amount", 0, "Fee amount")
	distributeCmd.Flags().StringVar(&creatorFlag, "creator", "", "Token creator")
	distributeCmd.Flags().StringVar(&payerFlag, "payer", "", "Account holding the fee, if any")
	distributeCmd.MarkFlagRequired("amount")
	distributeCmd.MarkFlagRequired("creator")

	for _, c := range []*cobra.Command{buybackCmd, withdrawCmd} {
		c.Flags().StringVar(&callerFlag, "caller", "", "The authority")
		c.Flags().StringVar(&recipientFlag, "recipient", "", "Receiving account")
		c.Flags().Uint64Var(&amountFlag, "amount", 0, "Amount")
		c.MarkFlagRequired("caller")
		c.MarkFlagRequired("amount")
	}
	withdrawCmd.MarkFlagRequired("recipient")
}
