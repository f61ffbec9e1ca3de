package cmd

import (
	"log"

	"github.com/findy-network/findy-vcx/cmds/connection"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Parent command for connections",
	Long: `
Parent command for connections
	`,
	Run: func(cmd *cobra.Command, _ []string) {
		SubCmdNeeded(cmd)
	},
}

var invitationEnvs = map[string]string{
	"label": "LABEL",
}

var invitationCmd = &cobra.Command{
	Use:   "invitation",
	Short: "Command for creating an invitation",
	Long: `
Command for creating a connection with a new pairwise DID. The invitation JSON
is printed. The service endpoint is from the bridge config.

Example
	findy-vcx connection invitation \
		--bridge-config '{"service_endpoint":"http://localhost:8080"}' \
		--wallet-name issuer \
		--wallet-key 6cih1cVgRH8...dv67o8QbufxaTHot3Qxp \
		--label alice
	`,
	PreRunE: func(*cobra.Command, []string) (err error) {
		return BindEnvs(invitationEnvs, "CONNECTION")
	},
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)
		c := try.To1(baseCmd())
		return run(cmd, connection.InviteCmd{Cmd: c, Label: invitationLabel})
	},
}

var invitationLabel string

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	invitationCmd.Flags().StringVar(&invitationLabel, "label", "", flagInfo("connection label", connectionCmd.Name(), invitationEnvs["label"]))
	addWalletFlags(invitationCmd)

	rootCmd.AddCommand(connectionCmd)
	connectionCmd.AddCommand(invitationCmd)
}
