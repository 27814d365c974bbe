// Package tree implements the Tree handle: spec.md §4.5's thin wrapper
// binding a Backend to one Tree's root ID, the entry point for opening
// Operations and read-only Viewers scoped to that Tree.
package tree

import (
	"github.com/eidetica/eideticadb/backend"
	"github.com/eidetica/eideticadb/operation"
)

// Tree is a handle onto one Tree within a Backend, identified by its root
// Entry's ID. It carries no state of its own beyond that binding: every
// read or write goes through a fresh Operation or Viewer.
type Tree struct {
	backend backend.Backend
	rootID  string
}

// Open returns a handle onto the Tree rooted at rootID. It does not verify
// rootID exists; that surfaces naturally on first use.
func Open(b backend.Backend, rootID string) *Tree {
	return &Tree{backend: b, rootID: rootID}
}

// RootID returns the Tree's root Entry ID, which doubles as the Tree's
// stable identifier.
func (t *Tree) RootID() string { return t.rootID }

// GetTips returns the IDs of the Tree's current Tree-dimension tips.
func (t *Tree) GetTips() ([]string, error) {
	return t.backend.GetTips(t.rootID)
}

// NewOperation opens a staged transaction against the Tree's current
// frontier.
func (t *Tree) NewOperation() (*operation.Operation, error) {
	return operation.Open(t.backend, t.rootID)
}

// Viewer opens a read-only snapshot of the Tree, pinned at the frontier
// observed when each subtree it touches is first read.
func (t *Tree) Viewer() (*operation.Viewer, error) {
	return operation.OpenViewer(t.backend, t.rootID)
}

// GetSubtreeViewer is Viewer by another name: a Viewer is already scoped
// lazily per subtree (each subtree's tips are pinned on its first read,
// independent of every other subtree), so subtree selection happens on
// the returned Viewer itself, via KVStore(name) or the package-level
// RowsView[T](v, name).
func (t *Tree) GetSubtreeViewer() (*operation.Viewer, error) {
	return t.Viewer()
}

// GetSettings returns a read-only handle onto the Tree's reserved
// _settings subtree.
func (t *Tree) GetSettings() (*operation.KVViewHandle, error) {
	v, err := t.Viewer()
	if err != nil {
		return nil, err
	}
	return v.KVStore(operation.SettingsSubtree), nil
}

// Name returns the Tree's human-readable name, as recorded under the
// "name" key of its _settings subtree at creation time.
func (t *Tree) Name() (string, error) {
	settings, err := t.GetSettings()
	if err != nil {
		return "", err
	}
	return settings.GetString("name")
}
