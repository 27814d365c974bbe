package entry

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuilderSortsParentsAndSubtrees(t *testing.T) {
	e := NewBuilder("tree-1").
		SetParents([]string{"b", "a", "c"}).
		SetSubtree("zeta", []string{"z2", "z1"}, "zdata").
		SetSubtree("alpha", nil, "adata").
		Build()

	if diff := cmp.Diff([]string{"a", "b", "c"}, e.Parents()); diff != "" {
		t.Fatalf("parents not sorted (-want +got):\n%s", diff)
	}

	names := make([]string, 0, len(e.Subtrees()))
	for _, s := range e.Subtrees() {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, names); diff != "" {
		t.Fatalf("subtrees not sorted by name (-want +got):\n%s", diff)
	}

	zeta, ok := e.Subtree("zeta")
	if !ok {
		t.Fatalf("expected zeta subtree to exist")
	}
	if diff := cmp.Diff([]string{"z1", "z2"}, zeta.Parents); diff != "" {
		t.Fatalf("subtree parents not sorted (-want +got):\n%s", diff)
	}
}

func TestBuilderStripsEmptySubtrees(t *testing.T) {
	e := NewBuilder("tree-1").
		SetSubtree("touched", nil, "").
		SetSubtree("written", nil, "data").
		Build()

	if e.HasSubtree("touched") {
		t.Fatalf("expected empty-data subtree to be stripped")
	}
	if !e.HasSubtree("written") {
		t.Fatalf("expected non-empty subtree to survive")
	}
}

func TestIDDeterministicRegardlessOfConstructionOrder(t *testing.T) {
	e1 := NewBuilder("tree-1").
		SetParents([]string{"p1", "p2"}).
		SetSubtree("a", []string{"x"}, "1").
		SetSubtree("b", []string{"y"}, "2").
		Build()

	e2 := NewBuilder("tree-1").
		SetSubtree("b", []string{"y"}, "2").
		SetSubtree("a", []string{"x"}, "1").
		SetParents([]string{"p2", "p1"}).
		Build()

	id1, err := e1.ID()
	if err != nil {
		t.Fatal(err)
	}
	id2, err := e2.ID()
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatalf("expected identical IDs for logically identical entries, got %s vs %s", id1, id2)
	}
}

func TestIDIsHashOfCanonicalBytes(t *testing.T) {
	e := NewBuilder("tree-1").SetData("hello").Build()

	b, err := e.CanonicalBytes()
	if err != nil {
		t.Fatal(err)
	}
	id, err := e.ID()
	if err != nil {
		t.Fatal(err)
	}

	sum := sha256.Sum256(b)
	recomputed := hex.EncodeToString(sum[:])
	if id != recomputed {
		t.Fatalf("ID does not match SHA-256 of canonical bytes: %s vs %s", id, recomputed)
	}
}

func TestDifferentMetadataProducesDifferentID(t *testing.T) {
	e1 := NewBuilder("tree-1").SetData("x").SetMetadata("m1").Build()
	e2 := NewBuilder("tree-1").SetData("x").SetMetadata("m2").Build()

	id1 := e1.MustID()
	id2 := e2.MustID()
	if id1 == id2 {
		t.Fatalf("expected metadata to affect ID, both were %s", id1)
	}
}
