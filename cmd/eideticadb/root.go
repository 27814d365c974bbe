package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dbPath     string
	treeName   string
	logLevel   string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "eideticadb",
	Short: "A todo/profile/preferences sample built on eideticadb",
	Long: `eideticadb is a command-line sample application that demonstrates the
eideticadb engine: a content-addressed, CRDT-backed embedded database.

It keeps one Tree per --tree name, with a RowStore of todos and two
KVNested maps (profile and preferences) inside it.

Examples:
  eideticadb add "Buy groceries"
  eideticadb list
  eideticadb complete <id>
  eideticadb set-user name "Ada Lovelace"
  eideticadb show-user name
  eideticadb set-pref theme dark
  eideticadb show-prefs`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogging(viper.GetString("log-level"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "eideticadb.json", "Path to the database file")
	rootCmd.PersistentFlags().StringVar(&treeName, "tree", "default", "Name of the Tree to operate on, created on first use")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (overrides EIDETICADB_CONFIG)")

	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("tree", rootCmd.PersistentFlags().Lookup("tree"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}
