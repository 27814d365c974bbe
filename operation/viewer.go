package operation

import (
	"github.com/eidetica/eideticadb/backend"
	"github.com/eidetica/eideticadb/crdt"
	"github.com/eidetica/eideticadb/dag"
	"github.com/eidetica/eideticadb/entry"
)

// Viewer is a read-only snapshot of a Tree, per spec.md §4.5: it pins each
// subtree's tips the first time that subtree is read and afterwards folds
// only the ancestors of those tips, so repeated reads of one subtree
// through one Viewer observe the same point in history even if the backend
// keeps advancing underneath it. The Tree-dimension tips are not retained,
// and two subtrees first read at different times are pinned at different
// points.
type Viewer struct {
	backend backend.Backend
	treeID  string

	subtreeParents map[string][]string
}

// OpenViewer checks that treeID's tips can be read and returns a fresh
// Viewer. No tips are kept until a subtree is first read.
func OpenViewer(b backend.Backend, treeID string) (*Viewer, error) {
	if _, err := b.GetTips(treeID); err != nil {
		return nil, err
	}
	return &Viewer{backend: b, treeID: treeID, subtreeParents: make(map[string][]string)}, nil
}

func (v *Viewer) ancestorEntries(name string) ([]entry.Entry, error) {
	tips, ok := v.subtreeParents[name]
	if !ok {
		var err error
		tips, err = v.backend.GetSubtreeTips(v.treeID, name)
		if err != nil {
			return nil, err
		}
		v.subtreeParents[name] = tips
	}
	all, err := v.backend.GetSubtree(v.treeID, name)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool)
	for _, n := range dag.Ancestors(backend.SubtreeDagNodes(all, name), tips) {
		keep[n.ID] = true
	}
	out := make([]entry.Entry, 0, len(keep))
	for _, e := range all {
		if keep[e.MustID()] {
			out = append(out, e)
		}
	}
	return out, nil
}

// KVViewHandle is the read-only counterpart to KVStoreHandle.
type KVViewHandle struct {
	viewer *Viewer
	name   string
}

// KVStore returns a read-only handle onto the named KVNested subtree.
func (v *Viewer) KVStore(name string) *KVViewHandle {
	return &KVViewHandle{viewer: v, name: name}
}

func (h *KVViewHandle) full() (*crdt.KVNested, error) {
	return foldAncestors(h.viewer, h.name, crdt.NewKVNested, crdt.DeserializeKVNested, mergeKVNested)
}

// GetString returns the live string at path, or a NotFound error.
func (h *KVViewHandle) GetString(path string) (string, error) {
	full, err := h.full()
	if err != nil {
		return "", err
	}
	return crdt.NewPathEditor(full).GetString(path)
}

// Keys returns every live top-level key in the subtree.
func (h *KVViewHandle) Keys() ([]string, error) {
	full, err := h.full()
	if err != nil {
		return nil, err
	}
	return full.Keys(), nil
}

// RowViewHandle is the read-only counterpart to RowStoreHandle.
type RowViewHandle[T any] struct {
	viewer *Viewer
	name   string
}

// RowsView returns a read-only handle onto the named RowStore subtree,
// typed for record type T.
func RowsView[T any](v *Viewer, name string) *RowViewHandle[T] {
	return &RowViewHandle[T]{viewer: v, name: name}
}

func (h *RowViewHandle[T]) full() (*crdt.RowStore[T], error) {
	merge := func(a, b *crdt.RowStore[T]) *crdt.RowStore[T] { return a.Merge(b) }
	return foldAncestors(h.viewer, h.name, crdt.NewRowStore[T], crdt.DeserializeRowStore[T], merge)
}

// Get returns the record at id, or a NotFound error.
func (h *RowViewHandle[T]) Get(id string) (T, error) {
	full, err := h.full()
	if err != nil {
		var zero T
		return zero, err
	}
	return full.Get(id)
}

// IDs returns every live record ID.
func (h *RowViewHandle[T]) IDs() ([]string, error) {
	full, err := h.full()
	if err != nil {
		return nil, err
	}
	return full.IDs(), nil
}

// Search scans every live record and returns matches for predicate.
func (h *RowViewHandle[T]) Search(predicate func(T) bool) ([]crdt.RowMatch[T], error) {
	full, err := h.full()
	if err != nil {
		return nil, err
	}
	return full.Search(predicate)
}
