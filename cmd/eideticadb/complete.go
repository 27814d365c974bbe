package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eidetica/eideticadb/operation"
)

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a todo item done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		t, err := openTree()
		if err != nil {
			return fmt.Errorf("failed to open tree: %w", err)
		}

		op, err := t.NewOperation()
		if err != nil {
			return fmt.Errorf("failed to open operation: %w", err)
		}

		rows := operation.Rows[Todo](op, todosSubtree)
		item, err := rows.Get(id)
		if err != nil {
			return fmt.Errorf("todo %s not found: %w", id, err)
		}
		item.Completed = true
		if err := rows.Set(id, item); err != nil {
			return fmt.Errorf("failed to stage update: %w", err)
		}
		if _, err := op.Commit(); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}

		fmt.Printf("completed %s: %s\n", id, item.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
