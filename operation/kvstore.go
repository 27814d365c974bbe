package operation

import "github.com/eidetica/eideticadb/crdt"

// KVStoreHandle is a path-addressed view over one KVNested subtree, staged
// against an Operation. Every read folds the subtree's full ancestor
// history plus whatever this Operation has already staged; every write
// re-stages the whole updated value.
type KVStoreHandle struct {
	op   *Operation
	name string
}

// KVStore returns a handle onto the named KVNested subtree.
func (op *Operation) KVStore(name string) *KVStoreHandle {
	return &KVStoreHandle{op: op, name: name}
}

func mergeKVNested(a, b *crdt.KVNested) *crdt.KVNested { return a.Merge(b) }

func (h *KVStoreHandle) full() (*crdt.KVNested, error) {
	merged, err := foldAncestors(h.op, h.name, crdt.NewKVNested, crdt.DeserializeKVNested, mergeKVNested)
	if err != nil {
		return nil, err
	}
	if staged, ok := h.op.stagedData(h.name); ok {
		v, err := crdt.DeserializeKVNested(staged)
		if err != nil {
			return nil, err
		}
		merged = merged.Merge(v)
	}
	return merged, nil
}

func (h *KVStoreHandle) stage(full *crdt.KVNested) error {
	data, err := full.Serialize()
	if err != nil {
		return err
	}
	h.op.setStaged(h.name, data)
	return nil
}

// GetString returns the live string at path, or a NotFound error.
func (h *KVStoreHandle) GetString(path string) (string, error) {
	full, err := h.full()
	if err != nil {
		return "", err
	}
	return crdt.NewPathEditor(full).GetString(path)
}

// Keys returns every live top-level key in the subtree.
func (h *KVStoreHandle) Keys() ([]string, error) {
	full, err := h.full()
	if err != nil {
		return nil, err
	}
	return full.Keys(), nil
}

// Set stages value as a leaf string at path, creating intermediate maps as
// needed.
func (h *KVStoreHandle) Set(path, value string) error {
	full, err := h.full()
	if err != nil {
		return err
	}
	if err := crdt.NewPathEditor(full).Set(path, value); err != nil {
		return err
	}
	return h.stage(full)
}

// Delete stages a tombstone at path.
func (h *KVStoreHandle) Delete(path string) error {
	full, err := h.full()
	if err != nil {
		return err
	}
	if err := crdt.NewPathEditor(full).Delete(path); err != nil {
		return err
	}
	return h.stage(full)
}
