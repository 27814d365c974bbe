package jsonfile

import (
	"path/filepath"
	"testing"

	"github.com/eidetica/eideticadb/entry"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(filepath.Join(dir, "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	roots, err := b.AllRoots()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 0 {
		t.Fatalf("expected empty backend, got %d roots", len(roots))
	}
}

func TestPutPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")

	b1, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	root := entry.NewBuilder("").SetData("root").Build()
	if err := b1.Put(root); err != nil {
		t.Fatal(err)
	}

	b2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := b2.Get(root.MustID())
	if err != nil {
		t.Fatal(err)
	}
	if got.MustID() != root.MustID() {
		t.Fatalf("persisted entry ID mismatch")
	}
}
