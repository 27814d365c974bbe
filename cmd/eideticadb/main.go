// Command eideticadb is a sample embedder of the eideticadb engine: a
// small todo/profile/preferences CLI that exercises a RowStore and two
// KVNested subtrees inside one Tree, demonstrating how a host application
// wires the database, tree, and operation packages together.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
