package tx

import (
	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/cmd/clawnchcli/cmd/utils"
	"github.com/clawnch/ledger/ledger/types"
	"github.com/clawnch/ledger/rpc"
)

// initConfigCmd represents the init-config command
// Example:
//		clawnchcli tx init-config --caller=0x2e833968e5bb786ae419c4d13189fb081cc43bab --protocol=1000 --creator=2000 --buyback=3500 --staking=3500
var initConfigCmd = &cobra.Command{
	Use:     "init-config",
	Short:   "Create the fee configuration, fee vault and treasury",
	Example: `clawnchcli tx init-config --caller=0x2e833968e5bb786ae419c4d13189fb081cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("initialize config", "clawnch.InitializeConfig", configArgs())
	},
}

// updateConfigCmd represents the update-config command
// Example:
//		clawnchcli tx update-config --caller=0x2e833968e5bb786ae419c4d13189fb081cc43bab --protocol=2500 --creator=2500 --buyback=2500 --staking=2500
var updateConfigCmd = &cobra.Command{
	Use:   "update-config",
	Short: "Replace the fee split",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("update config", "clawnch.UpdateConfig", configArgs())
	},
}

// transferAuthorityCmd represents the transfer-authority command
var transferAuthorityCmd = &cobra.Command{
	Use:   "transfer-authority",
	Short: "Hand the configuration, fee vault and treasury to a new authority",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("transfer authority", "clawnch.TransferAuthority", rpc.TransferAuthorityArgs{
			Caller:       utils.ParseAccountID("caller", callerFlag),
			NewAuthority: utils.ParseAccountID("new-authority", newAuthorityFlag),
		})
	},
}

func configArgs() rpc.ConfigArgs {
	return rpc.ConfigArgs{
		Caller:      utils.ParseAccountID("caller", callerFlag),
		ProtocolBps: protocolBpsFlag,
		CreatorBps:  creatorBpsFlag,
		BuybackBps:  buybackBpsFlag,
		StakingBps:  stakingBpsFlag,
	}
}

func init() {
	for _, c := range []*cobra.Command{initConfigCmd, updateConfigCmd} {
		c.Flags().StringVar(&callerFlag, "caller", "", "The authority")
		c.Flags().Uint16Var(&protocolBpsFlag, "protocol", types.DefaultProtocolBps, "Protocol share in bps")
		c.Flags().Uint16Var(&creatorBpsFlag, "creator", types.DefaultCreatorBps, "Creator share in bps")
		c.Flags().Uint16Var(&buybackBpsFlag, "buyback", types.DefaultBuybackBps, "Buyback share in bps")
		c.Flags().Uint16Var(&stakingBpsFlag, "staking", types.DefaultStakingBps, "Staking share in bps")
		c.MarkFlagRequired("caller")
	}

	transferAuthorityCmd.Flags().StringVar(&callerFlag, "caller", "", "The current authority")
	transferAuthorityCmd.Flags().StringVar(&newAuthorityFlag, "new-authority", "", "The new authority")
	transferAuthorityCmd.MarkFlagRequired("caller")
	transferAuthorityCmd.MarkFlagRequired("new-authority")
}
