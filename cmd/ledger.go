package cmd

import (
	"log"

	"github.com/findy-network/findy-vcx/bridge"
	"github.com/findy-network/findy-vcx/cmds/pool"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Parent command for the ledger pool",
	Long: `
Parent command for the ledger pool. The bridge uses the pool named by the
pool_name of the bridge config.
	`,
	Run: func(cmd *cobra.Command, _ []string) {
		SubCmdNeeded(cmd)
	},
}

var ledgerEnvs = map[string]string{
	"name":             "NAME",
	"genesis-txn-file": "GENESIS_TXN_FILE",
}

var ledgerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Command for creating the pool config from a genesis file",
	Long: `
Command for creating the pool config from a genesis file

Example
	findy-vcx ledger create \
		--name findy \
		--genesis-txn-file genesis_transactions
	`,
	PreRunE: func(*cobra.Command, []string) error {
		return BindEnvs(ledgerEnvs, "LEDGER")
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, &pool.CreateCmd{Name: ledgerName(), Txn: genesisFile})
	},
}

var ledgerPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Command for opening and closing the pool",
	Long: `
Command for opening and closing the pool. Without --name the pool_name of the
bridge config is used.

Example
	findy-vcx ledger ping --name findy
	`,
	PreRunE: func(*cobra.Command, []string) error {
		return BindEnvs(ledgerEnvs, "LEDGER")
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, &pool.PingCmd{Name: ledgerName()})
	},
}

var (
	poolName    string
	genesisFile string
)

// ledgerName returns the --name or the pool of the bridge config.
func ledgerName() string {
	if poolName != "" {
		return poolName
	}
	cfg, err := bridge.ParseConfig(rootFlags.bridgeConfig)
	if err != nil {
		return ""
	}
	return cfg.PoolName
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	f := ledgerCmd.PersistentFlags()
	f.StringVar(&poolName, "name", "", flagInfo("pool name", ledgerCmd.Name(), ledgerEnvs["name"]))
	ledgerCreateCmd.Flags().StringVar(&genesisFile, "genesis-txn-file", "",
		flagInfo("genesis transactions file", ledgerCmd.Name(), ledgerEnvs["genesis-txn-file"]))
	try.To(ledgerCreateCmd.MarkFlagFilename("genesis-txn-file"))

	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerCreateCmd, ledgerPingCmd)
}
