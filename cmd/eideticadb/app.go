package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/eidetica/eideticadb/backend/jsonfile"
	"github.com/eidetica/eideticadb/database"
	"github.com/eidetica/eideticadb/dberrors"
	"github.com/eidetica/eideticadb/tree"
)

// openTree opens the configured database file and returns a handle onto
// the configured Tree, creating it (seeded with its name) if this is the
// first time this --tree has been used against this --db.
func openTree() (*tree.Tree, error) {
	path := viper.GetString("db")
	name := viper.GetString("tree")

	b, err := jsonfile.Open(path)
	if err != nil {
		return nil, err
	}
	db := database.New(b)

	matches, err := db.FindTree(name)
	if err == nil {
		return matches[0], nil
	}
	if !errors.Is(err, dberrors.ErrNotFound) {
		return nil, err
	}

	slog.Info("creating new tree", "name", name, "db", path)
	return db.NewTree(map[string]string{"name": name})
}
