package cmd

import (
	"errors"
	"log"

	"github.com/findy-network/findy-vcx/cmds/schema"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// schCmd represents the schema command
var schCmd = &cobra.Command{
	Use:   "schema",
	Short: "Parent command for operating with schemas",
	Long: `
Parent command for operating with schemas
	`,
	Run: func(cmd *cobra.Command, _ []string) {
		SubCmdNeeded(cmd)
	},
}

var schCreateEnvs = map[string]string{
	"version":    "VERSION",
	"name":       "NAME",
	"attributes": "ATTRIBUTES",
}

// schCreateCmd represents the schema create subcommand
var schCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Command for creating new schema to the ledger",
	Long: `
Command for creating new schema to the ledger. The issuer is the
institution_did of the bridge config.

Example
	findy-vcx schema create \
		--bridge-config '{"pool_name":"findy","institution_did":"V4SGRU86Z58d6TV7PBUe6f"}' \
		--wallet-name issuer \
		--wallet-key 6cih1cVgRH8...dv67o8QbufxaTHot3Qxp \
		--name my_schema_name \
		--attributes field1,field2,field3 \
		--version 1.0
	`,
	PreRunE: func(*cobra.Command, []string) (err error) {
		return BindEnvs(schCreateEnvs, "SCHEMA")
	},
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)
		c := try.To1(baseCmd())
		return run(cmd, schema.CreateCmd{
			Cmd:     c,
			Name:    schName,
			Version: schVersion,
			Attrs:   viper.GetStringSlice("attributes"),
		})
	},
}

var schReadEnvs = map[string]string{
	"id": "ID",
}

// schReadCmd represents the schema read subcommand
var schReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Command for getting schema attributes by id",
	Long: `
Command for getting schema attributes by id

Example
	findy-vcx schema read \
		--bridge-config '{"pool_name":"findy","institution_did":"V4SGRU86Z58d6TV7PBUe6f"}' \
		--id V4SGRU86Z58d6TV7PBUe6f:2:my_schema_name:1.0
`,
	PreRunE: func(*cobra.Command, []string) (err error) {
		return BindEnvs(schReadEnvs, "SCHEMA")
	},
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)
		c := try.To1(baseCmd())
		return run(cmd, readCmd{schema.GetCmd{Cmd: c, ID: schID}})
	},
}

// readCmd doesn't need the wallet flags, only the bridge config.
type readCmd struct {
	schema.GetCmd
}

func (c readCmd) Validate() error {
	if c.ID == "" {
		return errors.New("schema id cannot be empty")
	}
	return nil
}

var (
	schVersion string
	schName    string
	schAttrs   []string
	schID      string
)

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	c := schCreateCmd.Flags()
	c.StringVar(&schName, "name", "", flagInfo("schema name", schCmd.Name(), schCreateEnvs["name"]))
	c.StringVar(&schVersion, "version", "1.0", flagInfo("schema version", schCmd.Name(), schCreateEnvs["version"]))
	c.StringSliceVar(&schAttrs, "attributes", nil, flagInfo("schema attributes", schCmd.Name(), schCreateEnvs["attributes"]))
	try.To(viper.BindPFlag("attributes", c.Lookup("attributes")))
	addWalletFlags(schCreateCmd)

	r := schReadCmd.Flags()
	r.StringVar(&schID, "id", "", flagInfo("schema ID", schCmd.Name(), schReadEnvs["id"]))

	rootCmd.AddCommand(schCmd)
	schCmd.AddCommand(schCreateCmd)
	schCmd.AddCommand(schReadCmd)
}
