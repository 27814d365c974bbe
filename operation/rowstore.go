package operation

import "github.com/eidetica/eideticadb/crdt"

// RowStoreHandle is a UUID-keyed record collection view over one
// KVOverWrite-backed subtree, staged against an Operation. Go methods
// cannot carry their own type parameters, so Rows is a free function
// rather than an Operation method.
type RowStoreHandle[T any] struct {
	op   *Operation
	name string
}

// Rows returns a handle onto the named RowStore subtree, typed for record
// type T.
func Rows[T any](op *Operation, name string) *RowStoreHandle[T] {
	return &RowStoreHandle[T]{op: op, name: name}
}

func (h *RowStoreHandle[T]) full() (*crdt.RowStore[T], error) {
	merge := func(a, b *crdt.RowStore[T]) *crdt.RowStore[T] { return a.Merge(b) }
	merged, err := foldAncestors(h.op, h.name, crdt.NewRowStore[T], crdt.DeserializeRowStore[T], merge)
	if err != nil {
		return nil, err
	}
	if staged, ok := h.op.stagedData(h.name); ok {
		v, err := crdt.DeserializeRowStore[T](staged)
		if err != nil {
			return nil, err
		}
		merged = merged.Merge(v)
	}
	return merged, nil
}

func (h *RowStoreHandle[T]) stage(full *crdt.RowStore[T]) error {
	data, err := full.Serialize()
	if err != nil {
		return err
	}
	h.op.setStaged(h.name, data)
	return nil
}

// Insert mints a fresh ID for value, stages it, and returns the ID.
func (h *RowStoreHandle[T]) Insert(value T) (string, error) {
	full, err := h.full()
	if err != nil {
		return "", err
	}
	id, err := full.Insert(value)
	if err != nil {
		return "", err
	}
	if err := h.stage(full); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the record at id, or a NotFound error.
func (h *RowStoreHandle[T]) Get(id string) (T, error) {
	full, err := h.full()
	if err != nil {
		var zero T
		return zero, err
	}
	return full.Get(id)
}

// Set overwrites the record at id and stages the change.
func (h *RowStoreHandle[T]) Set(id string, value T) error {
	full, err := h.full()
	if err != nil {
		return err
	}
	if err := full.Set(id, value); err != nil {
		return err
	}
	return h.stage(full)
}

// Remove tombstones id and stages the change.
func (h *RowStoreHandle[T]) Remove(id string) error {
	full, err := h.full()
	if err != nil {
		return err
	}
	full.Remove(id)
	return h.stage(full)
}

// IDs returns every live record ID.
func (h *RowStoreHandle[T]) IDs() ([]string, error) {
	full, err := h.full()
	if err != nil {
		return nil, err
	}
	return full.IDs(), nil
}

// Search scans every live record and returns matches for predicate.
func (h *RowStoreHandle[T]) Search(predicate func(T) bool) ([]crdt.RowMatch[T], error) {
	full, err := h.full()
	if err != nil {
		return nil, err
	}
	return full.Search(predicate)
}
