package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eidetica/eideticadb/operation"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new todo item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTree()
		if err != nil {
			return fmt.Errorf("failed to open tree: %w", err)
		}

		op, err := t.NewOperation()
		if err != nil {
			return fmt.Errorf("failed to open operation: %w", err)
		}

		id, err := operation.Rows[Todo](op, todosSubtree).Insert(Todo{Title: args[0]})
		if err != nil {
			return fmt.Errorf("failed to stage todo: %w", err)
		}
		if _, err := op.Commit(); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}

		fmt.Printf("added todo %s: %s\n", id, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
