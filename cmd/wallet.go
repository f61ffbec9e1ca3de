package cmd

import (
	"log"

	"github.com/findy-network/findy-vcx/cmds/wallet"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Parent command for wallet commands",
	Long: `
Parent command for wallet commands
	`,
	Run: func(cmd *cobra.Command, _ []string) {
		SubCmdNeeded(cmd)
	},
}

var createWalletCmd = &cobra.Command{
	Use:   "create",
	Short: "Command for creating a wallet",
	Long: `
Command for creating a wallet. An existing wallet is not an error.

Example
	findy-vcx wallet create \
		--wallet-name issuer \
		--wallet-key 6cih1cVgRH8...dv67o8QbufxaTHot3Qxp
	`,
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)
		c := try.To1(baseCmd())
		return run(cmd, wallet.CreateCmd{Cmd: c})
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	addWalletFlags(createWalletCmd)

	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(createWalletCmd)
}
