package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eidetica/eideticadb/operation"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todo items",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTree()
		if err != nil {
			return fmt.Errorf("failed to open tree: %w", err)
		}

		viewer, err := t.Viewer()
		if err != nil {
			return fmt.Errorf("failed to open viewer: %w", err)
		}

		rows := operation.RowsView[Todo](viewer, todosSubtree)
		ids, err := rows.IDs()
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("(no todos)")
			return nil
		}

		shown := 0
		for _, id := range ids {
			item, err := rows.Get(id)
			if err != nil {
				continue
			}
			if item.Completed && !listAll {
				continue
			}
			icon := "○"
			if item.Completed {
				icon = "●"
			}
			fmt.Printf("%s %s  %s\n", icon, id, item.Title)
			shown++
		}
		if shown == 0 {
			fmt.Println("(no todos)")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed todos")
	rootCmd.AddCommand(listCmd)
}
