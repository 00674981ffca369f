package query

import (
	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/cmd/clawnchcli/cmd/utils"
	"github.com/clawnch/ledger/rpc"
)

// feeVaultCmd represents the fee-vault command.
// Example:
//		clawnchcli query fee-vault
var feeVaultCmd = &cobra.Command{
	Use:   "fee-vault",
	Short: "Get the fee vault and its balance",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("get fee vault", "clawnch.GetFeeVault", rpc.GetFeeVaultArgs{})
	},
}

// treasuryCmd represents the treasury command.
// Example:
//		clawnchcli query treasury
var treasuryCmd = &cobra.Command{
	Use:   "treasury",
	Short: "Get the token treasury and its balance",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("get treasury", "clawnch.GetTreasury", rpc.GetTreasuryArgs{})
	},
}

// vaultCmd represents the vault command.
// Example:
//		clawnchcli query vault --user=0x2e833968e5bb786ae419c4d13189fb081cc43bab
var vaultCmd = &cobra.Command{
	Use:     "vault",
	Short:   "Get the staking vault of a user with its accrued reward",
	Example: `clawnchcli query vault --user=0x2e833968e5bb786ae419c4d13189fb081cc43bab`,
	Run:     doVaultCmd,
}

func doVaultCmd(cmd *cobra.Command, args []string) {
	utils.Call("get staking vault", "clawnch.GetStakingVault", rpc.GetStakingVaultArgs{
		User: utils.ParseAccountID("user", userFlag),
	})
}

// vaultsCmd represents the vaults command.
// Example:
//		clawnchcli query vaults
var vaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "List all staking vaults and the total stake",
	Run: func(cmd *cobra.Command, args []string) {
		utils.Call("list staking vaults", "clawnch.ListStakingVaults", rpc.ListStakingVaultsArgs{})
	},
}

func init() {
	vaultCmd.Flags().StringVar(&userFlag, "user", "", "Owner of the staking vault")
	vaultCmd.MarkFlagRequired("user")
}
