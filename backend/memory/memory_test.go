package memory

import (
	"testing"

	"github.com/eidetica/eideticadb/entry"
)

func mustBuild(t *testing.T, b *entry.Builder) entry.Entry {
	t.Helper()
	return b.Build()
}

func TestPutGetRoundTrip(t *testing.T) {
	m := New()
	root := mustBuild(t, entry.NewBuilder("").SetData("root"))
	id := root.MustID()
	if err := m.Put(root); err != nil {
		t.Fatal(err)
	}
	got, err := m.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.MustID() != id {
		t.Fatalf("round-tripped entry has different ID")
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	m := New()
	_, err := m.Get("nope")
	if err == nil {
		t.Fatalf("expected error for missing entry")
	}
}

func TestTipsAndTreeOrdering(t *testing.T) {
	m := New()
	root := entry.NewBuilder("").SetData("root").Build()
	rootID := root.MustID()
	if err := m.Put(root); err != nil {
		t.Fatal(err)
	}

	child1 := entry.NewBuilder(rootID).SetParents([]string{rootID}).SetData("c1").Build()
	if err := m.Put(child1); err != nil {
		t.Fatal(err)
	}
	child2 := entry.NewBuilder(rootID).SetParents([]string{rootID}).SetData("c2").Build()
	if err := m.Put(child2); err != nil {
		t.Fatal(err)
	}

	tips, err := m.GetTips(rootID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tips) != 2 {
		t.Fatalf("expected 2 concurrent tips, got %v", tips)
	}

	all, err := m.GetTree(rootID)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries in tree (root+2 children), got %d", len(all))
	}
	if all[0].MustID() != rootID {
		t.Fatalf("expected root first in topological order")
	}
}

func TestAllRoots(t *testing.T) {
	m := New()
	r1 := entry.NewBuilder("").SetData("r1").Build()
	r2 := entry.NewBuilder("").SetData("r2").Build()
	_ = m.Put(r1)
	_ = m.Put(r2)

	roots, err := m.AllRoots()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	m := New()
	root := entry.NewBuilder("").SetData("root").Build()
	_ = m.Put(root)

	dump, err := m.Dump()
	if err != nil {
		t.Fatal(err)
	}

	m2 := New()
	if err := m2.Load(dump); err != nil {
		t.Fatal(err)
	}
	got, err := m2.Get(root.MustID())
	if err != nil {
		t.Fatal(err)
	}
	if got.MustID() != root.MustID() {
		t.Fatalf("loaded entry ID mismatch")
	}
}
