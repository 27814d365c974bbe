package crdt

import "testing"

func TestKVOverWriteSetGetRemove(t *testing.T) {
	k := NewKVOverWrite()
	k.Set("a", "1")
	if v, ok := k.Get("a"); !ok || v != "1" {
		t.Fatalf("expected a=1, got %q ok=%v", v, ok)
	}
	k.Remove("a")
	if _, ok := k.Get("a"); ok {
		t.Fatalf("expected a to be tombstoned")
	}
	if !k.Has("a") {
		t.Fatalf("expected tombstoned key to still be Has()")
	}
}

func TestKVOverWriteRemoveAbsentKeyCreatesTombstone(t *testing.T) {
	k := NewKVOverWrite()
	k.Remove("never-set")
	if !k.Has("never-set") {
		t.Fatalf("Remove on absent key should still record a tombstone")
	}
}

func TestKVOverWriteMergeOtherWins(t *testing.T) {
	a := NewKVOverWrite()
	a.Set("x", "from-a")
	a.Set("y", "only-a")

	b := NewKVOverWrite()
	b.Set("x", "from-b")

	merged := a.Merge(b)
	if v, _ := merged.Get("x"); v != "from-b" {
		t.Fatalf("expected other to win on shared key, got %q", v)
	}
	if v, _ := merged.Get("y"); v != "only-a" {
		t.Fatalf("expected self-only key preserved, got %q", v)
	}
}

func TestKVOverWriteMergeTombstonePropagates(t *testing.T) {
	a := NewKVOverWrite()
	a.Set("x", "alive")

	b := NewKVOverWrite()
	b.Remove("x")

	merged := a.Merge(b)
	if _, ok := merged.Get("x"); ok {
		t.Fatalf("expected tombstone from later side to win")
	}
}

func TestKVOverWriteMergeLaws(t *testing.T) {
	a := NewKVOverWrite()
	a.Set("k1", "v1")
	b := NewKVOverWrite()
	b.Set("k2", "v2")
	c := NewKVOverWrite()
	c.Set("k3", "v3")
	empty := NewKVOverWrite()

	// merge(a, empty) = a
	if ser1, _ := a.Merge(empty).Serialize(); true {
		if ser2, _ := a.Serialize(); ser1 != ser2 {
			t.Fatalf("merge(a, empty) != a: %s vs %s", ser1, ser2)
		}
	}

	// associativity on disjoint key sets
	left, _ := a.Merge(b).Merge(c).Serialize()
	right, _ := a.Merge(b.Merge(c)).Serialize()
	if left != right {
		t.Fatalf("merge not associative: %s vs %s", left, right)
	}

	// idempotence
	once, _ := a.Merge(a).Serialize()
	base, _ := a.Serialize()
	if once != base {
		t.Fatalf("merge(a, a) != a: %s vs %s", once, base)
	}
}

func TestKVOverWriteSerializeRoundTrip(t *testing.T) {
	a := NewKVOverWrite()
	a.Set("k", "v")
	a.Remove("deleted")

	ser, err := a.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	b, err := DeserializeKVOverWrite(ser)
	if err != nil {
		t.Fatal(err)
	}
	ser2, err := b.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if ser != ser2 {
		t.Fatalf("round trip changed bytes: %s vs %s", ser, ser2)
	}
}
