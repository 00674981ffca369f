package tx

import (
	"github.com/spf13/cobra"
)

// Common flags used in Tx sub commands.
var (
	callerFlag       string
	recipientFlag    string
	accountFlag      string
	creatorFlag      string
	payerFlag        string
	newAuthorityFlag string
	amountFlag       uint64
	protocolBpsFlag  uint16
	creatorBpsFlag   uint16
	buybackBpsFlag   uint16
	stakingBpsFlag   uint16
)

// TxCmd represents the Tx command
var TxCmd = &cobra.Command{
	Use:   "tx",
	Short: "Submit ledger operations",
	Long:  `Submit ledger operations.`,
}

func init() {
	TxCmd.AddCommand(initConfigCmd)
	TxCmd.AddCommand(updateConfigCmd)
	TxCmd.AddCommand(transferAuthorityCmd)
	TxCmd.AddCommand(distributeCmd)
	TxCmd.AddCommand(buybackCmd)
	TxCmd.AddCommand(withdrawCmd)
	TxCmd.AddCommand(depositCmd)
	TxCmd.AddCommand(stakeCmd)
	TxCmd.AddCommand(unstakeCmd)
}
