package tree

import (
	"testing"

	"github.com/eidetica/eideticadb/backend/memory"
	"github.com/eidetica/eideticadb/crdt"
	"github.com/eidetica/eideticadb/entry"
	"github.com/eidetica/eideticadb/operation"
)

func newNamedTree(t *testing.T, name string) (*memory.Memory, *Tree) {
	t.Helper()
	b := memory.New()
	settings := crdt.NewKVNested()
	settings.Set("name", name)
	data, err := settings.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	root := entry.NewBuilder(entry.RootSentinel).
		SetSubtree(operation.SettingsSubtree, nil, data).
		Build()
	if err := b.Put(root); err != nil {
		t.Fatal(err)
	}
	return b, Open(b, root.MustID())
}

func TestTreeNameRoundTrip(t *testing.T) {
	_, tr := newNamedTree(t, "journal")
	name, err := tr.Name()
	if err != nil {
		t.Fatal(err)
	}
	if name != "journal" {
		t.Fatalf("got %q", name)
	}
}

func TestTreeNewOperationCommitAdvancesTips(t *testing.T) {
	b, tr := newNamedTree(t, "journal")

	before, err := tr.GetTips()
	if err != nil {
		t.Fatal(err)
	}

	op, err := tr.NewOperation()
	if err != nil {
		t.Fatal(err)
	}
	if err := op.KVStore("prefs").Set("theme", "dark"); err != nil {
		t.Fatal(err)
	}
	newID, err := op.Commit()
	if err != nil {
		t.Fatal(err)
	}

	after, err := tr.GetTips()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 || after[0] != newID {
		t.Fatalf("expected tips to advance to [%s], got %v (before %v)", newID, after, before)
	}
	_ = b
}
