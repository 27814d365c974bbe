// Package entry implements the immutable, content-addressed Entry: the
// single unit of persistence in the Merkle-DAG. An Entry's ID is a pure
// function of its canonical serialization, so two Entries built from
// logically identical inputs in any order hash identically.
package entry

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// RootSentinel is the value of TreeData.Root for a Tree's own root Entry.
const RootSentinel = ""

// TreeData is the main-tree payload of an Entry: its Tree-dimension
// parents, the serialized settings/root payload, and the optional
// metadata side channel.
type TreeData struct {
	Root     string   `json:"root"`
	Parents  []string `json:"parents"`
	Data     string   `json:"data"`
	Metadata string   `json:"metadata,omitempty"`
}

// SubtreeRecord is one named partition inside an Entry: its own sorted
// parent list (restricted to the subtree dimension) and serialized CRDT
// data.
type SubtreeRecord struct {
	Name    string   `json:"name"`
	Parents []string `json:"parents"`
	Data    string   `json:"data"`
}

// Entry is an immutable, content-addressed record. It is never constructed
// directly outside this package — Builder.Build is the only path to a new
// one, and FromCanonical rebuilds one from already-canonical persisted
// fields — so that the invariants (sorted parents, sorted unique subtree
// names, stripped empty subtrees) hold. FromCanonical does not re-check
// them.
type Entry struct {
	tree     TreeData
	subtrees []SubtreeRecord
}

// Root returns the identifier of the Tree this Entry belongs to. The
// sentinel empty string marks the Tree's own root Entry.
func (e Entry) Root() string { return e.tree.Root }

// Parents returns the sorted Tree-dimension parent IDs. The returned slice
// is owned by the caller; mutating it does not affect the Entry.
func (e Entry) Parents() []string { return append([]string(nil), e.tree.Parents...) }

// Data returns the serialized main-tree payload.
func (e Entry) Data() string { return e.tree.Data }

// Metadata returns the serialized metadata side channel, or "" if none was
// set. Metadata participates in canonical bytes (and thus in ID) but never
// in CRDT merge logic.
func (e Entry) Metadata() string { return e.tree.Metadata }

// IsRoot reports whether this Entry is a Tree's own root Entry.
func (e Entry) IsRoot() bool { return e.tree.Root == RootSentinel }

// Subtrees returns the sorted, name-unique subtree records. The returned
// slice is owned by the caller.
func (e Entry) Subtrees() []SubtreeRecord {
	out := make([]SubtreeRecord, len(e.subtrees))
	copy(out, e.subtrees)
	return out
}

// Subtree returns the record for name and whether it exists on this Entry.
func (e Entry) Subtree(name string) (SubtreeRecord, bool) {
	i := sort.Search(len(e.subtrees), func(i int) bool { return e.subtrees[i].Name >= name })
	if i < len(e.subtrees) && e.subtrees[i].Name == name {
		return e.subtrees[i], true
	}
	return SubtreeRecord{}, false
}

// HasSubtree reports whether name is present on this Entry.
func (e Entry) HasSubtree(name string) bool {
	_, ok := e.Subtree(name)
	return ok
}

// FromCanonical reconstructs an Entry from already-canonical fields — used
// when loading a previously-persisted Entry back from a Backend, where the
// sorting and stripping invariants are known to already hold rather than
// needing to be (re)established by Builder.
func FromCanonical(tree TreeData, subtrees []SubtreeRecord) Entry {
	return Entry{tree: tree, subtrees: subtrees}
}

// wireEntry is the canonical JSON shape. Field declaration order here is
// the fixed field order the spec requires; encoding/json preserves struct
// field order for objects, so this struct IS the canonical schema.
type wireEntry struct {
	Tree     TreeData        `json:"tree"`
	Subtrees []SubtreeRecord `json:"subtrees"`
}

// CanonicalBytes returns the deterministic serialization of e. Two Entries
// with identical logical content produce identical bytes regardless of
// construction order, because Builder.Build already sorted every orderable
// field before freezing the value.
func (e Entry) CanonicalBytes() ([]byte, error) {
	return json.Marshal(wireEntry{Tree: e.tree, Subtrees: e.subtrees})
}

// ID computes the hex SHA-256 digest of e's canonical bytes. It is not a
// stored field: it is always derived on demand, so it can never drift from
// the content it names. For a Tree's root Entry, ID is by definition the
// Tree's own identifier.
func (e Entry) ID() (string, error) {
	b, err := e.CanonicalBytes()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// MustID is ID but panics on error. Safe to use on any Entry, since its
// fields are plain strings and string slices, which encoding/json always
// marshals without error.
func (e Entry) MustID() string {
	id, err := e.ID()
	if err != nil {
		panic(err)
	}
	return id
}
