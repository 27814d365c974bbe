package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

const prefsSubtree = "prefs"

var setPrefCmd = &cobra.Command{
	Use:   "set-pref <key> <value>",
	Short: "Set a preference",
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
		if err := op.KVStore(prefsSubtree).Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to stage preference update: %w", err)
		}
		if _, err := op.Commit(); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}

		fmt.Printf("prefs.%s = %s\n", args[0], args[1])
		return nil
	},
}

var showPrefsCmd = &cobra.Command{
	Use:   "show-prefs",
	Short: "Show every preference key and value",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTree()
		if err != nil {
			return fmt.Errorf("failed to open tree: %w", err)
		}

		viewer, err := t.Viewer()
		if err != nil {
			return fmt.Errorf("failed to open viewer: %w", err)
		}
		prefs := viewer.KVStore(prefsSubtree)
		keys, err := prefs.Keys()
		if err != nil {
			return fmt.Errorf("failed to read preferences: %w", err)
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			fmt.Println("(no preferences set)")
			return nil
		}
		for _, key := range keys {
			value, err := prefs.GetString(key)
			if err != nil {
				continue
			}
			fmt.Printf("%s = %s\n", key, value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setPrefCmd)
	rootCmd.AddCommand(showPrefsCmd)
}
