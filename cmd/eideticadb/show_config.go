package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// resolvedConfig is the shape written and read back as the CLI's YAML
// config file.
type resolvedConfig struct {
	DB       string `yaml:"db"`
	Tree     string `yaml:"tree"`
	LogLevel string `yaml:"log-level"`
}

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Print the fully resolved configuration (flags, env, config file) as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolvedConfig{
			DB:       viper.GetString("db"),
			Tree:     viper.GetString("tree"),
			LogLevel: viper.GetString("log-level"),
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
