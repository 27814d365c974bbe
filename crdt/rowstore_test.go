package crdt

import (
	"errors"
	"testing"

	"github.com/eidetica/eideticadb/dberrors"
)

type todo struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func TestRowStoreInsertGet(t *testing.T) {
	rs := NewRowStore[todo]()
	id1, err := rs.Insert(todo{Title: "a"})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := rs.Insert(todo{Title: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct IDs for two inserts")
	}

	v, err := rs.Get(id1)
	if err != nil {
		t.Fatal(err)
	}
	if v.Title != "a" {
		t.Fatalf("expected title a, got %q", v.Title)
	}
}

func TestRowStoreUpdatePreservesID(t *testing.T) {
	rs := NewRowStore[todo]()
	id, err := rs.Insert(todo{Title: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if err := rs.Set(id, todo{Title: "a", Completed: true}); err != nil {
		t.Fatal(err)
	}
	v, err := rs.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Completed {
		t.Fatalf("expected completed=true after update")
	}
}

func TestRowStoreRemoveThenGetNotFound(t *testing.T) {
	rs := NewRowStore[todo]()
	id, _ := rs.Insert(todo{Title: "a"})
	rs.Remove(id)
	_, err := rs.Get(id)
	if !errors.Is(err, dberrors.ErrNotFound) {
		t.Fatalf("expected NotFound after Remove, got %v", err)
	}
}

func TestRowStoreSearch(t *testing.T) {
	rs := NewRowStore[todo]()
	_, _ = rs.Insert(todo{Title: "a", Completed: false})
	_, _ = rs.Insert(todo{Title: "b", Completed: true})

	matches, err := rs.Search(func(v todo) bool { return v.Completed })
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].Value.Title != "b" {
		t.Fatalf("expected one completed match 'b', got %+v", matches)
	}
}

func TestRowStoreMergeDifferentIDsCoexist(t *testing.T) {
	a := NewRowStore[todo]()
	idA, _ := a.Insert(todo{Title: "a"})

	b := NewRowStore[todo]()
	idB, _ := b.Insert(todo{Title: "b"})

	merged := a.Merge(b)
	if _, err := merged.Get(idA); err != nil {
		t.Fatalf("expected idA to survive merge: %v", err)
	}
	if _, err := merged.Get(idB); err != nil {
		t.Fatalf("expected idB to survive merge: %v", err)
	}
}
