package operation

import (
	"github.com/eidetica/eideticadb/elog"
	"github.com/eidetica/eideticadb/entry"
)

// source is satisfied by both *Operation and *Viewer: anything that can
// hand back a subtree's pinned ancestor entries in topological order.
type source interface {
	ancestorEntries(name string) ([]entry.Entry, error)
}

// foldAncestors walks a subtree's persisted history in topological order
// and folds it through merge, starting from empty. This is the read half
// of every CRDT handle; Operation handles layer staged local state on top
// of the result, Viewer handles return it as-is.
func foldAncestors[T any](s source, name string, empty func() T, deserialize func(string) (T, error), merge func(T, T) T) (T, error) {
	entries, err := s.ancestorEntries(name)
	if err != nil {
		return empty(), err
	}
	elog.Debugf("operation: folding %d ancestor entries for subtree %q", len(entries), name)
	merged := empty()
	for _, e := range entries {
		rec, ok := e.Subtree(name)
		if !ok {
			continue
		}
		v, err := deserialize(rec.Data)
		if err != nil {
			return empty(), err
		}
		merged = merge(merged, v)
	}
	return merged, nil
}
