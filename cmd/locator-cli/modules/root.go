package modules

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/molyee/scylladb/cmd/locator-cli/modules/keyspace"
	"github.com/molyee/scylladb/cmd/locator-cli/modules/ring"
	"github.com/molyee/scylladb/misc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "locator-cli",
	Short: "Command Line Tool to inspect token ring replica placement",
	Long: `Locator CLI works with token ring snapshots and keyspace schema records.

It contains commands for browsing ring snapshots, managing the keyspace
schema with its replica placement strategies and computing natural
endpoints of tokens without a running agent.`,
	Run: entryPoint,
}

func entryPoint(cmd *cobra.Command, _ []string) {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("Locator CLI"))

		return
	}

	_ = cmd.Usage()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// use stdout as default output for cmd.Print()
	rootCmd.SetOut(os.Stdout)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $HOME/.config/locator-cli/config.yaml)")
	rootCmd.Flags().Bool("version", false, "Application version")

	rootCmd.AddCommand(
		ring.Cmd,
		keyspace.Cmd,
	)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".config/locator-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".config/locator-cli")
	}

	viper.SetEnvPrefix(misc.Prefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
