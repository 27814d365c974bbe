// Package backend defines the storage contract the rest of the engine
// depends on: persisting Entries by ID and answering the graph queries
// (tips, topological order, roots) that the operation and CRDT layers
// fold over. Concrete implementations live in backend/memory and
// backend/jsonfile.
package backend

import "github.com/eidetica/eideticadb/entry"

// Backend persists Entries and serves the graph primitives the rest of
// the core depends on. The contract is permissive by default: Put does
// not have to verify that an Entry's parents are already known, though an
// implementation may choose to. Graph queries never mutate state; they
// may return a stale view if raced against a concurrent Put, but they
// never corrupt it, since Entries are immutable once persisted.
type Backend interface {
	// Get loads a persisted Entry by ID, or returns an error wrapping
	// dberrors.ErrNotFound.
	Get(id string) (entry.Entry, error)

	// Put persists e. It is idempotent for equal IDs: a Backend may
	// silently succeed on a duplicate Put, or return an error wrapping
	// dberrors.ErrAlreadyExists — both are conforming.
	Put(e entry.Entry) error

	// GetTips returns the IDs of every Entry in treeID with no
	// Tree-dimension child.
	GetTips(treeID string) ([]string, error)

	// GetSubtreeTips returns the IDs of every Entry in treeID that
	// contains the named subtree and has no child, within that subtree's
	// own parent dimension, that also contains the subtree.
	GetSubtreeTips(treeID, name string) ([]string, error)

	// AllRoots returns the ID of every Entry whose tree.root is the
	// empty-string sentinel — one per Tree known to the backend.
	AllRoots() ([]string, error)

	// GetTree returns every Entry belonging to treeID, ordered by the
	// engine's total ordering rule (height ascending, then ID ascending).
	GetTree(treeID string) ([]entry.Entry, error)

	// GetSubtree is GetTree restricted to Entries containing the named
	// subtree, ordered by that subtree's own topological sort.
	GetSubtree(treeID, name string) ([]entry.Entry, error)
}
