// Package database implements the Database facade from spec.md §4.5: the
// entry point embedders construct around a Backend, responsible for
// minting new Trees and locating existing ones by root ID or by name.
package database

import (
	"github.com/google/uuid"

	"github.com/eidetica/eideticadb/backend"
	"github.com/eidetica/eideticadb/crdt"
	"github.com/eidetica/eideticadb/dberrors"
	"github.com/eidetica/eideticadb/entry"
	"github.com/eidetica/eideticadb/operation"
	"github.com/eidetica/eideticadb/tree"
)

// Database wraps a Backend and provides the only way to create a new
// Tree: committing its root Entry directly, bypassing Operation entirely
// since a root Entry has no Tree-dimension parents and its own ID is not
// known until it is built.
type Database struct {
	backend backend.Backend
}

// New wraps an existing Backend.
func New(b backend.Backend) *Database {
	return &Database{backend: b}
}

// NewTree commits a fresh root Entry seeded with initialSettings in the
// reserved _settings subtree, and returns a handle onto the new Tree.
func (d *Database) NewTree(initialSettings map[string]string) (*tree.Tree, error) {
	settings := crdt.NewKVNested()
	for k, v := range initialSettings {
		settings.Set(k, v)
	}
	data, err := settings.Serialize()
	if err != nil {
		return nil, err
	}
	// A fresh nonce as the root's tree data keeps two Trees created with
	// identical settings from hashing to the same root ID.
	root := entry.NewBuilder(entry.RootSentinel).
		SetData(uuid.New().String()).
		SetSubtree(operation.SettingsSubtree, nil, data).
		Build()
	if err := d.backend.Put(root); err != nil {
		return nil, err
	}
	return tree.Open(d.backend, root.MustID()), nil
}

// LoadTree returns a handle onto the Tree rooted at rootID, after
// confirming the root Entry is actually known to the backend.
func (d *Database) LoadTree(rootID string) (*tree.Tree, error) {
	if _, err := d.backend.Get(rootID); err != nil {
		return nil, err
	}
	return tree.Open(d.backend, rootID), nil
}

// AllTrees returns a handle onto every Tree the backend knows about.
func (d *Database) AllTrees() ([]*tree.Tree, error) {
	roots, err := d.backend.AllRoots()
	if err != nil {
		return nil, err
	}
	trees := make([]*tree.Tree, 0, len(roots))
	for _, id := range roots {
		trees = append(trees, tree.Open(d.backend, id))
	}
	return trees, nil
}

// FindTree scans every known Tree for those whose _settings "name" key
// matches name and returns all of them, since the engine enforces no
// name uniqueness — two NewTree calls with the same initialSettings
// "name" produce two distinct roots that both match. Trees whose
// _settings cannot be read are skipped rather than aborting the scan.
// Returns an error wrapping dberrors.ErrNotFound if nothing matches.
func (d *Database) FindTree(name string) ([]*tree.Tree, error) {
	trees, err := d.AllTrees()
	if err != nil {
		return nil, err
	}
	var matches []*tree.Tree
	for _, t := range trees {
		n, err := t.Name()
		if err != nil {
			continue
		}
		if n == name {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return nil, dberrors.NotFoundf("tree %q", name)
	}
	return matches, nil
}
