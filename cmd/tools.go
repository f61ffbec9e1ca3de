package cmd

import (
	"fmt"
	"log"

	"github.com/findy-network/findy-vcx/cmds/key"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Parent command for generic tools",
	Run: func(cmd *cobra.Command, _ []string) {
		SubCmdNeeded(cmd)
	},
}

var keyEnvs = map[string]string{
	"seed": "SEED",
}

var keyCreateCmd = &cobra.Command{
	Use:   "key",
	Short: "Command for creating a wallet key",
	Long: `
Command for creating a wallet key for the --wallet-key flag. The same seed
gives the same key.

Example
	findy-vcx tools key --seed 00000000000000000000thisisa_test
	`,
	PreRunE: func(*cobra.Command, []string) error {
		return BindEnvs(keyEnvs, "KEY")
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, &key.CreateCmd{Seed: keySeed})
	},
}

var keySeed string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of the CLI tool",
	RunE: func(*cobra.Command, []string) (err error) {
		defer err2.Handle(&err)

		try.To1(fmt.Println(Version))
		return nil
	},
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	keyCreateCmd.Flags().StringVar(&keySeed, "seed", "", flagInfo("seed of the key", "KEY", keyEnvs["seed"]))

	rootCmd.AddCommand(toolsCmd, versionCmd)
	toolsCmd.AddCommand(keyCreateCmd)
}
