package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/findy-network/findy-vcx/agent/pool"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/findy-network/findy-vcx/cmds"
	"github.com/findy-network/findy-vcx/completionhelp"
	"github.com/findy-network/findy-vcx/indy"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "VCX"

// Version is set by the build.
var Version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: Version,
	Use:     "findy-vcx",
	Short:   "Findy VCX cli tool",
	Long: `
Findy VCX cli tool runs the credential exchange bridge operations from the
command line: wallets, schemas, credential definitions and connections.
	`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		ParseLoggingArgs(rootFlags.logging)
		handleViperFlags(cmd)
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		pool.Close()
	},
}

// Execute root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns a current root command which can be used for adding own
// commands in an own repo.
func RootCmd() *cobra.Command {
	return rootCmd
}

// DryRun returns a value of a dry run flag.
func DryRun() bool {
	return rootFlags.dryRun
}

// RootFlags are the common flags
type RootFlags struct {
	cfgFile      string
	bridgeConfig string
	dryRun       bool
	logging      string
}

// ClientFlags are the wallet flags of the commands which open a wallet.
type ClientFlags struct {
	WalletName string
	WalletKey  string
}

var (
	rootFlags = RootFlags{}
	cFlags    = ClientFlags{}
)

var rootEnvs = map[string]string{
	"config":        "CONFIG",
	"bridge-config": "BRIDGE_CONFIG",
	"logging":       "LOGGING",
	"dry-run":       "DRY_RUN",
}

var walletEnvs = map[string]string{
	"wallet-name": "WALLET_NAME",
	"wallet-key":  "WALLET_KEY",
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.cfgFile, "config", "", flagInfo("configuration file", "", rootEnvs["config"]))
	flags.StringVar(&rootFlags.bridgeConfig, "bridge-config", "", flagInfo("bridge config JSON", "", rootEnvs["bridge-config"]))
	flags.StringVar(&rootFlags.logging, "logging", "-logtostderr=true -v=1", flagInfo("logging startup arguments", "", rootEnvs["logging"]))
	flags.BoolVarP(&rootFlags.dryRun, "dry-run", "n", false, flagInfo("perform a trial run with no changes made", "", rootEnvs["dry-run"]))

	try.To(viper.BindPFlag("logging", flags.Lookup("logging")))
	try.To(viper.BindPFlag("bridge-config", flags.Lookup("bridge-config")))
	try.To(viper.BindPFlag("dry-run", flags.Lookup("dry-run")))

	try.To(BindEnvs(rootEnvs, ""))
}

// addWalletFlags adds the wallet flags to the command.
func addWalletFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&cFlags.WalletName, "wallet-name", "", flagInfo("wallet name", "", walletEnvs["wallet-name"]))
	f.StringVar(&cFlags.WalletKey, "wallet-key", "", flagInfo("wallet key", "", walletEnvs["wallet-key"]))
	try.To(BindEnvs(walletEnvs, ""))
	try.To(c.RegisterFlagCompletionFunc("wallet-name",
		func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return completionhelp.WalletNames(completionhelp.WalletLocations()),
				cobra.ShellCompDirectiveNoFileComp
		}))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	readConfigFile()
	readBoundRootFlags()
}

func readBoundRootFlags() {
	rootFlags.logging = viper.GetString("logging")
	rootFlags.bridgeConfig = viper.GetString("bridge-config")
	rootFlags.dryRun = viper.GetBool("dry-run")
}

func readConfigFile() {
	cfgEnv := os.Getenv(getEnvName("", "config"))
	if rootFlags.cfgFile != "" || cfgEnv != "" {
		printInfo := true
		if rootFlags.cfgFile == "" {
			rootFlags.cfgFile = cfgEnv
			printInfo = false
		}
		viper.SetConfigFile(rootFlags.cfgFile)
		if err := viper.ReadInConfig(); err == nil && printInfo {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// baseCmd returns the base of the wallet commands. The ledger pool of the
// bridge config is opened here, and closed after the command.
func baseCmd() (c cmds.Cmd, err error) {
	defer err2.Handle(&err)

	cfg := try.To1(bridge.ParseConfig(rootFlags.bridgeConfig))
	if cfg.PoolName != "" && !rootFlags.dryRun {
		try.To1(pool.Open(cfg.PoolName))
	}
	return cmds.Cmd{
		Config:     rootFlags.bridgeConfig,
		WalletName: cFlags.WalletName,
		WalletKey:  cFlags.WalletKey,
		SDK:        indy.New(),
	}, nil
}

// run validates the command and executes it unless it's a dry run.
func run(cmd *cobra.Command, c cmds.Command) (err error) {
	defer err2.Handle(&err)

	try.To(c.Validate())
	if !rootFlags.dryRun {
		cmd.SilenceUsage = true
		try.To1(c.Exec(os.Stdout))
	}
	return nil
}

// ParseLoggingArgs gives the glog flags in s to the flag package.
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Fields(s)...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}

// BindEnvs calls viper.BindEnv with envMap and cmdName which can be empty if
// flag is general.
func BindEnvs(envMap map[string]string, cmdName string) (err error) {
	defer err2.Handle(&err)
	for flagKey, envName := range envMap {
		finalEnvName := getEnvName(cmdName, envName)
		try.To(viper.BindEnv(flagKey, finalEnvName))
	}
	return nil
}

func flagInfo(info, cmdPrefix, envName string) string {
	return info + ", " + getEnvName(cmdPrefix, envName)
}

func getEnvName(cmdName, envName string) string {
	if cmdName == "" {
		return envPrefix + "_" + strings.ToUpper(envName)
	}
	return envPrefix + "_" + strings.ToUpper(cmdName) + "_" + envName
}

func handleViperFlags(cmd *cobra.Command) {
	setRequiredStringFlags(cmd)
	if cmd.HasParent() {
		handleViperFlags(cmd.Parent())
	}
}

func setRequiredStringFlags(cmd *cobra.Command) {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	try.To(viper.BindPFlags(cmd.LocalFlags()))
	if cmd.PreRunE != nil {
		try.To(cmd.PreRunE(cmd, nil))
	}
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if viper.GetString(f.Name) != "" {
			try.To(cmd.LocalFlags().Set(f.Name, viper.GetString(f.Name)))
		}
	})
}

// SubCmdNeeded prints the help and error messages because the cmd is abstract.
func SubCmdNeeded(cmd *cobra.Command) {
	fmt.Println("Subcommand needed!")
	_ = cmd.Help()
	os.Exit(1)
}
