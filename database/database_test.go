package database

import (
	"testing"

	"github.com/eidetica/eideticadb/backend/memory"
)

func TestNewTreeFindByName(t *testing.T) {
	db := New(memory.New())
	tr, err := db.NewTree(map[string]string{"name": "journal"})
	if err != nil {
		t.Fatal(err)
	}

	found, err := db.FindTree("journal")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].RootID() != tr.RootID() {
		t.Fatalf("FindTree returned %+v, want exactly [tr]", found)
	}
}

func TestFindTreeReturnsEveryNameMatch(t *testing.T) {
	db := New(memory.New())
	a, err := db.NewTree(map[string]string{"name": "dup"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := db.NewTree(map[string]string{"name": "dup"})
	if err != nil {
		t.Fatal(err)
	}
	if a.RootID() == b.RootID() {
		t.Fatalf("expected two distinct roots for two NewTree calls")
	}

	found, err := db.FindTree("dup")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches for duplicate name, got %d", len(found))
	}
	seen := map[string]bool{found[0].RootID(): true, found[1].RootID(): true}
	if !seen[a.RootID()] || !seen[b.RootID()] {
		t.Fatalf("FindTree matches %+v do not cover both roots %s, %s", found, a.RootID(), b.RootID())
	}
}

func TestFindTreeMissingReturnsNotFound(t *testing.T) {
	db := New(memory.New())
	if _, err := db.FindTree("nope"); err == nil {
		t.Fatalf("expected error for missing tree")
	}
}

func TestAllTreesListsEveryTree(t *testing.T) {
	db := New(memory.New())
	if _, err := db.NewTree(map[string]string{"name": "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := db.NewTree(map[string]string{"name": "b"}); err != nil {
		t.Fatal(err)
	}

	all, err := db.AllTrees()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 trees, got %d", len(all))
	}
}

func TestLoadTreeUnknownRootReturnsError(t *testing.T) {
	db := New(memory.New())
	if _, err := db.LoadTree("nonexistent"); err == nil {
		t.Fatalf("expected error for unknown root ID")
	}
}
