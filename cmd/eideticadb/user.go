package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const profileSubtree = "profile"

var setUserCmd = &cobra.Command{
	Use:   "set-user <key> <value>",
	Short: "Set a key in the profile map",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTree()
		if err != nil {
			return fmt.Errorf("failed to open tree: %w", err)
		}

		op, err := t.NewOperation()
		if err != nil {
			return fmt.Errorf("failed to open operation: %w", err)
		}
		if err := op.KVStore(profileSubtree).Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to stage profile update: %w", err)
		}
		if _, err := op.Commit(); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}

		fmt.Printf("profile.%s = %s\n", args[0], args[1])
		return nil
	},
}

var showUserCmd = &cobra.Command{
	Use:   "show-user <key>",
	Short: "Show a key from the profile map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTree()
		if err != nil {
			return fmt.Errorf("failed to open tree: %w", err)
		}

		viewer, err := t.Viewer()
		if err != nil {
			return fmt.Errorf("failed to open viewer: %w", err)
		}
		value, err := viewer.KVStore(profileSubtree).GetString(args[0])
		if err != nil {
			return fmt.Errorf("profile.%s not set: %w", args[0], err)
		}

		fmt.Println(value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setUserCmd)
	rootCmd.AddCommand(showUserCmd)
}
