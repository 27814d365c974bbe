// Package memory implements the reference in-memory Backend: a map from
// Entry ID to Entry guarded by storage.LockManager, matching the teacher
// idiom of centralizing the RWMutex discipline rather than calling
// sync.RWMutex methods at each call site.
package memory

import (
	"encoding/json"

	"github.com/eidetica/eideticadb/backend"
	"github.com/eidetica/eideticadb/dag"
	"github.com/eidetica/eideticadb/dberrors"
	"github.com/eidetica/eideticadb/elog"
	"github.com/eidetica/eideticadb/entry"
	"github.com/eidetica/eideticadb/storage"
)

// Memory is the reference in-memory Backend.
type Memory struct {
	lock    *storage.LockManager
	entries map[string]entry.Entry
}

// New returns an empty in-memory Backend.
func New() *Memory {
	return &Memory{
		lock:    storage.NewLockManager(),
		entries: make(map[string]entry.Entry),
	}
}

var _ backend.Backend = (*Memory)(nil)

// Get implements backend.Backend.
func (m *Memory) Get(id string) (entry.Entry, error) {
	return storage.ExecuteWithResult(m.lock, storage.ReadOperation, func() (entry.Entry, error) {
		e, ok := m.entries[id]
		if !ok {
			return entry.Entry{}, dberrors.NotFoundf("entry %q", id)
		}
		return e, nil
	})
}

// Put implements backend.Backend. Duplicate IDs silently succeed: the ID
// identifies the content, so re-persisting the same Entry is a no-op.
func (m *Memory) Put(e entry.Entry) error {
	id, err := e.ID()
	if err != nil {
		return dberrors.NewSerializationError("put", err)
	}
	err = m.lock.Execute(storage.WriteOperation, func() error {
		m.entries[id] = e
		return nil
	})
	if err == nil {
		elog.Debugf("memory: put entry %s (root=%s)", id, e.Root())
	}
	return err
}

// GetTips implements backend.Backend.
func (m *Memory) GetTips(treeID string) ([]string, error) {
	return storage.ExecuteWithResult(m.lock, storage.ReadOperation, func() ([]string, error) {
		treeEntries := backend.FilterTree(m.entries, treeID)
		nodes := backend.TreeDagNodes(treeEntries)
		return dag.Tips(nodes), nil
	})
}

// GetSubtreeTips implements backend.Backend.
func (m *Memory) GetSubtreeTips(treeID, name string) ([]string, error) {
	return storage.ExecuteWithResult(m.lock, storage.ReadOperation, func() ([]string, error) {
		treeEntries := backend.FilterTree(m.entries, treeID)
		subEntries := backend.FilterSubtree(treeEntries, name)
		nodes := backend.SubtreeDagNodes(subEntries, name)
		return dag.Tips(nodes), nil
	})
}

// AllRoots implements backend.Backend.
func (m *Memory) AllRoots() ([]string, error) {
	return storage.ExecuteWithResult(m.lock, storage.ReadOperation, func() ([]string, error) {
		var roots []string
		for id, e := range m.entries {
			if e.IsRoot() {
				roots = append(roots, id)
			}
		}
		return roots, nil
	})
}

// GetTree implements backend.Backend.
func (m *Memory) GetTree(treeID string) ([]entry.Entry, error) {
	return storage.ExecuteWithResult(m.lock, storage.ReadOperation, func() ([]entry.Entry, error) {
		treeEntries := backend.FilterTree(m.entries, treeID)
		nodes := backend.TreeDagNodes(treeEntries)
		return backend.OrderEntries(treeEntries, nodes), nil
	})
}

// GetSubtree implements backend.Backend.
func (m *Memory) GetSubtree(treeID, name string) ([]entry.Entry, error) {
	return storage.ExecuteWithResult(m.lock, storage.ReadOperation, func() ([]entry.Entry, error) {
		treeEntries := backend.FilterTree(m.entries, treeID)
		subEntries := backend.FilterSubtree(treeEntries, name)
		nodes := backend.SubtreeDagNodes(subEntries, name)
		return backend.OrderEntries(subEntries, nodes), nil
	})
}

// wireEntry mirrors entry's canonical JSON shape for the Dump/Load
// snapshot format: "the reference in-memory backend serializes a map from
// Entry ID to Entry as JSON."
type wireEntry struct {
	Tree     entry.TreeData        `json:"tree"`
	Subtrees []entry.SubtreeRecord `json:"subtrees"`
}

// Dump serializes the backend's full Entry set as a map from ID to
// canonical Entry JSON, matching the persisted state layout spec.md
// documents for file-backed backends.
func (m *Memory) Dump() ([]byte, error) {
	return storage.ExecuteWithResult(m.lock, storage.ReadOperation, func() ([]byte, error) {
		out := make(map[string]wireEntry, len(m.entries))
		for id, e := range m.entries {
			out[id] = wireEntry{Tree: treeDataOf(e), Subtrees: e.Subtrees()}
		}
		return json.Marshal(out)
	})
}

func treeDataOf(e entry.Entry) entry.TreeData {
	return entry.TreeData{
		Root:     e.Root(),
		Parents:  e.Parents(),
		Data:     e.Data(),
		Metadata: e.Metadata(),
	}
}

// Load replaces the backend's Entry set with the contents of a Dump
// snapshot.
func (m *Memory) Load(data []byte) error {
	var in map[string]wireEntry
	if err := json.Unmarshal(data, &in); err != nil {
		return dberrors.NewSerializationError("load", err)
	}
	loaded := make(map[string]entry.Entry, len(in))
	for id, w := range in {
		loaded[id] = entry.FromCanonical(w.Tree, w.Subtrees)
	}
	return m.lock.Execute(storage.WriteOperation, func() error {
		m.entries = loaded
		return nil
	})
}
