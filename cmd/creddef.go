package cmd

import (
	"log"

	"github.com/findy-network/findy-vcx/cmds/creddef"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

// creddefCmd represents the creddef command
var creddefCmd = &cobra.Command{
	Use:   "creddef",
	Short: "Parent command for operating with Credential definitions",
	Long: `
Parent command for operating with Credential definitions
	`,
	Run: func(cmd *cobra.Command, _ []string) {
		SubCmdNeeded(cmd)
	},
}

var credCreateEnvs = map[string]string{
	"tag":       "TAG",
	"schema-id": "SCHEMA_ID",
}

// createCreddefCmd represents the creddef create subcommand
var createCreddefCmd = &cobra.Command{
	Use:   "create",
	Short: "Command for creating new credential definition",
	Long: `
Command for creating new credential definition to the wallet and the ledger.
Only one credential definition per schema is allowed for the issuer.

Example
	findy-vcx creddef create \
		--bridge-config '{"pool_name":"findy","institution_did":"V4SGRU86Z58d6TV7PBUe6f"}' \
		--wallet-name issuer \
		--wallet-key 6cih1cVgRH8...dv67o8QbufxaTHot3Qxp \
		--schema-id V4SGRU86Z58d6TV7PBUe6f:2:my_schema_name:1.0 \
		--tag my_creddef_tag
	`,
	PreRunE: func(*cobra.Command, []string) (err error) {
		return BindEnvs(credCreateEnvs, "CREDDEF")
	},
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)
		c := try.To1(baseCmd())
		return run(cmd, creddef.CreateCmd{
			Cmd:      c,
			SchemaID: credDefSchemaID,
			Tag:      credDefTag,
		})
	},
}

var (
	credDefSchemaID string
	credDefTag      string
)

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	f := createCreddefCmd.Flags()
	f.StringVar(&credDefSchemaID, "schema-id", "", flagInfo("schema ID", creddefCmd.Name(), credCreateEnvs["schema-id"]))
	f.StringVar(&credDefTag, "tag", "", flagInfo("credential definition tag", creddefCmd.Name(), credCreateEnvs["tag"]))
	addWalletFlags(createCreddefCmd)

	rootCmd.AddCommand(creddefCmd)
	creddefCmd.AddCommand(createCreddefCmd)
}
