package crdt

import "strings"

// PathSeparator delimits path segments accepted by PathEditor, e.g.
// "user/profile/email".
const PathSeparator = "/"

// PathEditor provides get/set/delete at an arbitrary key path over a
// KVNested tree, creating intermediate maps on Set and writing tombstones
// on Delete. It operates on an in-memory KVNested value; callers are
// responsible for folding the full merged state in before editing and
// serializing the result back out after (see operation.KVStore).
type PathEditor struct {
	root *KVNested
}

// NewPathEditor wraps root for path-based access. root is mutated in
// place by Set/Delete.
func NewPathEditor(root *KVNested) *PathEditor {
	return &PathEditor{root: root}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, PathSeparator)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, PathSeparator)
}

// GetString returns the live string value at path, or an error wrapping
// dberrors.ErrNotFound if any segment of path is absent, tombstoned, or a
// leaf is reached before the path is exhausted.
func (p *PathEditor) GetString(path string) (string, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return "", notFoundErr(path)
	}
	cur := p.root
	for i, seg := range segments {
		v, ok := cur.Get(seg)
		if !ok || v.Kind == KindDeleted {
			return "", notFoundErr(path)
		}
		last := i == len(segments)-1
		if last {
			if v.Kind != KindString {
				return "", invalidOperationErr(path, "expected string, found map")
			}
			return v.Str, nil
		}
		if v.Kind != KindMap {
			return "", notFoundErr(path)
		}
		cur = v.Map
	}
	return "", notFoundErr(path)
}

// Set writes value as a leaf string at path, creating any intermediate
// maps that do not yet exist (or replacing a non-map value found along
// the way, since Set always wins at the point it touches).
func (p *PathEditor) Set(path, value string) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return invalidOperationErr(path, "empty path")
	}
	cur := p.root
	for i, seg := range segments {
		last := i == len(segments)-1
		if last {
			cur.Set(seg, value)
			return nil
		}
		v, ok := cur.Get(seg)
		if !ok || v.Kind != KindMap {
			next := NewKVNested()
			cur.SetMap(seg, next)
			cur = next
			continue
		}
		cur = v.Map
	}
	return nil
}

// Delete writes a tombstone at path, creating intermediate maps as needed
// so the deletion is recorded even if the path was never set — mirroring
// KVOverWrite.Remove's "always write the tombstone" discipline.
func (p *PathEditor) Delete(path string) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return invalidOperationErr(path, "empty path")
	}
	cur := p.root
	for i, seg := range segments {
		last := i == len(segments)-1
		if last {
			cur.Delete(seg)
			return nil
		}
		v, ok := cur.Get(seg)
		if !ok || v.Kind != KindMap {
			next := NewKVNested()
			cur.SetMap(seg, next)
			cur = next
			continue
		}
		cur = v.Map
	}
	return nil
}
