package key

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clawnch/ledger/cmd/clawnchcli/cmd/utils"
	"github.com/clawnch/ledger/ledger/types"
)

var (
	seedsFlag []string
	userFlag  string
)

// KeyCmd represents the key command
var KeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Derive account ids",
}

// deriveCmd represents the derive command
// Example:
//		clawnchcli key derive --seed=treasury --seed=0x2e833968e5bb786ae419c4d13189fb081cc43bab
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive an account id from seeds; 0x-prefixed seeds are decoded as hex",
	Run:   doDeriveCmd,
}

// vaultIDCmd represents the vault-id command
var vaultIDCmd = &cobra.Command{
	Use:   "vault-id",
	Short: "Print the staking vault id of a user",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(types.StakingVaultID(utils.ParseAccountID("user", userFlag)).Hex())
	},
}

func doDeriveCmd(cmd *cobra.Command, args []string) {
	seeds := make([][]byte, 0, len(seedsFlag))
	for _, s := range seedsFlag {
		if len(s) > 2 && s[:2] == "0x" {
			seeds = append(seeds, utils.ParseAccountID("seed", s).Bytes())
			continue
		}
		seeds = append(seeds, []byte(s))
	}
	fmt.Println(types.DeriveAccountID(seeds...).Hex())
}

func init() {
	deriveCmd.Flags().StringArrayVar(&seedsFlag, "seed", nil, "Seed, repeatable")
	deriveCmd.MarkFlagRequired("seed")

	vaultIDCmd.Flags().StringVar(&userFlag, "user", "", "Staking user")
	vaultIDCmd.MarkFlagRequired("user")

	KeyCmd.AddCommand(deriveCmd)
	KeyCmd.AddCommand(vaultIDCmd)
}
