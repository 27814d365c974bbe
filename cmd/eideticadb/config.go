package main

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// initConfig wires Viper's layered configuration: flags (bound in root.go)
// take precedence, then EIDETICADB_* environment variables, then a YAML
// config file discovered in the usual places, then the flag defaults.
func initConfig() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if env := os.Getenv("EIDETICADB_CONFIG"); env != "" {
		viper.SetConfigFile(env)
	} else {
		viper.SetConfigName("eideticadb")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.eideticadb")
	}

	viper.SetEnvPrefix("EIDETICADB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return err
		}
	}
	return nil
}
