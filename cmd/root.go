package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/findy-network/credat/agent/sdk"
	"github.com/findy-network/credat/agent/storage/cfg"
	"github.com/findy-network/credat/agent/utils"
	"github.com/findy-network/credat/cmds"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CREDAT"

var rootDoc = `Local command line tool for agent identity and delegation.

It creates did:web identities for agents, issues scoped delegation
credentials from an owner to an agent, verifies them and reports the local
trust state kept in the hidden .credat directory.`

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version:       utils.Version,
	Use:           "credat",
	Short:         "Agent identity and delegation CLI",
	Long:          rootDoc,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ParseLoggingArgs(rootFlags.logging)
		handleViperFlags(cmd)
	},
}

// Execute root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stdout, os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

// RootCmd returns a current root command which can be used for adding own
// commands in an own repo.
func RootCmd() *cobra.Command {
	return rootCmd
}

// RootFlags are the common flags
type RootFlags struct {
	cfgFile string
	logging string
	store   string
	json    bool
}

var rootFlags = RootFlags{}

var rootEnvs = map[string]string{
	"config":  "CONFIG",
	"logging": "LOGGING",
	"store":   "STORE",
	"json":    "JSON",
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		fmt.Println(err)
	}))

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.cfgFile, "config", "", flagInfo("configuration file", "", rootEnvs["config"]))
	flags.StringVar(&rootFlags.logging, "logging", "-logtostderr=true -v=0", flagInfo("logging startup arguments", "", rootEnvs["logging"]))
	flags.StringVar(&rootFlags.store, "store", "", flagInfo("trust store directory, default ./"+cfg.DirName, "", rootEnvs["store"]))
	flags.BoolVar(&rootFlags.json, "json", false, flagInfo("print results as JSON", "", rootEnvs["json"]))

	try.To(viper.BindPFlag("logging", flags.Lookup("logging")))
	try.To(viper.BindPFlag("store", flags.Lookup("store")))
	try.To(viper.BindPFlag("json", flags.Lookup("json")))

	try.To(BindEnvs(rootEnvs, ""))
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
	rootFlags.store = viper.GetString("store")
	rootFlags.json = viper.GetBool("json")
	// only one JSON document is printed, the usage would break it
	rootCmd.SilenceUsage = rootFlags.json
}

func readConfigFile() {
	cfgEnv := os.Getenv(getEnvName("", "config"))
	if rootFlags.cfgFile != "" || cfgEnv != "" {
		if rootFlags.cfgFile == "" {
			rootFlags.cfgFile = cfgEnv
		}
		viper.SetConfigFile(rootFlags.cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			glog.Warningln("config file:", err)
		} else {
			glog.V(1).Infoln("using config file:", viper.ConfigFileUsed())
		}
	}
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
		glog.Warningln(err)
	}))

	try.To(viper.BindPFlags(cmd.LocalFlags()))
	if cmd.PreRunE != nil {
		try.To(cmd.PreRunE(cmd, nil))
	}
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			try.To(cmd.LocalFlags().Set(f.Name, viper.GetString(f.Name)))
		}
	})
}

// ParseLoggingArgs feeds the logging flag value to the glog flag set.
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Fields(s)...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}

// baseCmd builds the store handle and the SDK for one invocation.
func baseCmd() (c cmds.Cmd, err error) {
	defer err2.Handle(&err)

	store := try.To1(cfg.StoreConfig{Dir: rootFlags.store}.Open())
	return cmds.Cmd{
		Store: store,
		SDK:   sdk.New(nil),
		Ctx:   context.Background(),
	}, nil
}

// run validates and executes the command. In JSON mode the human output is
// suppressed and only the result is printed.
func run(cmd *cobra.Command, c cmds.Command) (err error) {
	defer err2.Handle(&err)

	try.To(c.Validate())
	// if error occurs in the execution, we don't show usage, only the error
	// message.
	cmd.SilenceUsage = true

	out := cmd.OutOrStdout()
	var w io.Writer = out
	if rootFlags.json {
		w = nil
	}
	r := try.To1(c.Exec(w))
	if rootFlags.json {
		data := try.To1(r.JSON())
		try.To1(fmt.Fprintln(out, string(data)))
	}
	return nil
}

type errorJSON struct {
	Error string `json:"error"`
}

func printError(stdout, stderr io.Writer, err error) {
	if rootFlags.json {
		data, _ := json.Marshal(errorJSON{Error: err.Error()})
		fmt.Fprintln(stdout, string(data))
		return
	}
	fmt.Fprintln(stderr, "Error:", err)
}
