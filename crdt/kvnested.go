package crdt

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the three shapes a KVNested entry can take.
type ValueKind int

const (
	// KindString is a leaf string value.
	KindString ValueKind = iota
	// KindMap is a nested KVNested map.
	KindMap
	// KindDeleted is a tombstone.
	KindDeleted
)

// Value is the tagged union stored at each KVNested key: a leaf string, a
// nested map, or a tombstone. Deletion is always represented as an
// explicit KindDeleted entry, never as removal from the underlying map —
// removing the map entry would lose the tombstone and let a deleted key
// resurrect during merge.
type Value struct {
	Kind ValueKind
	Str  string
	Map  *KVNested
}

// StringValue builds a leaf string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// MapValue builds a nested-map Value.
func MapValue(m *KVNested) Value { return Value{Kind: KindMap, Map: m} }

// DeletedValue builds a tombstone Value.
func DeletedValue() Value { return Value{Kind: KindDeleted} }

// KVNested is a map from string keys to Value, supporting arbitrary
// nesting. merge(self, other):
//   - a key present in only one side is kept as-is;
//   - both sides Map: recursively merged;
//   - either side Deleted (and the other isn't also a compatible Map):
//     other's value wins;
//   - both String, or one String and one Map: other wins.
//
// In short: Map+Map recurses, everything else lets other win outright —
// which is exactly last-writer-wins with the tombstone folded in.
type KVNested struct {
	entries map[string]Value
}

// NewKVNested returns the distinguished empty value.
func NewKVNested() *KVNested {
	return &KVNested{entries: make(map[string]Value)}
}

// Set stores a leaf string at key.
func (k *KVNested) Set(key, value string) {
	k.entries[key] = StringValue(value)
}

// SetMap stores a nested map at key.
func (k *KVNested) SetMap(key string, m *KVNested) {
	k.entries[key] = MapValue(m)
}

// Delete writes a tombstone at key.
func (k *KVNested) Delete(key string) {
	k.entries[key] = DeletedValue()
}

// Get returns the raw Value at key and whether key is present at all
// (including as a tombstone).
func (k *KVNested) Get(key string) (Value, bool) {
	v, ok := k.entries[key]
	return v, ok
}

// GetString returns the live string at key, or an error wrapping
// dberrors.ErrNotFound if key is absent/tombstoned and
// dberrors.ErrInvalidOperation if key holds a nested map instead of a
// string. Callers that need the raw tagged value should use Get instead.
func (k *KVNested) GetString(key string) (string, error) {
	v, ok := k.entries[key]
	if !ok || v.Kind == KindDeleted {
		return "", notFoundErr(key)
	}
	if v.Kind != KindString {
		return "", invalidOperationErr(key, "expected string, found map")
	}
	return v.Str, nil
}

// Keys returns every key with a live (non-tombstoned) entry.
func (k *KVNested) Keys() []string {
	keys := make([]string, 0, len(k.entries))
	for key, v := range k.entries {
		if v.Kind != KindDeleted {
			keys = append(keys, key)
		}
	}
	return keys
}

// Merge folds other on top of the receiver per the rules documented on
// KVNested.
func (k *KVNested) Merge(other *KVNested) *KVNested {
	out := NewKVNested()
	for key, v := range k.entries {
		out.entries[key] = v
	}
	for key, ov := range other.entries {
		sv, existsInSelf := out.entries[key]
		if existsInSelf && sv.Kind == KindMap && ov.Kind == KindMap {
			out.entries[key] = MapValue(sv.Map.Merge(ov.Map))
			continue
		}
		out.entries[key] = ov
	}
	return out
}

// wireValue is the JSON shape of a single tagged Value.
type wireValue struct {
	Kind string               `json:"kind"`
	Str  string               `json:"str,omitempty"`
	Map  map[string]wireValue `json:"map,omitempty"`
}

func toWire(v Value) wireValue {
	switch v.Kind {
	case KindString:
		return wireValue{Kind: "string", Str: v.Str}
	case KindMap:
		m := make(map[string]wireValue, len(v.Map.entries))
		for key, sub := range v.Map.entries {
			m[key] = toWire(sub)
		}
		return wireValue{Kind: "map", Map: m}
	default:
		return wireValue{Kind: "deleted"}
	}
}

func fromWire(w wireValue) (Value, error) {
	switch w.Kind {
	case "string":
		return StringValue(w.Str), nil
	case "map":
		nested := NewKVNested()
		for key, sub := range w.Map {
			v, err := fromWire(sub)
			if err != nil {
				return Value{}, err
			}
			nested.entries[key] = v
		}
		return MapValue(nested), nil
	case "deleted":
		return DeletedValue(), nil
	default:
		return Value{}, fmt.Errorf("crdt: unknown KVNested value kind %q", w.Kind)
	}
}

// Serialize returns the CRDT's canonical JSON encoding.
func (k *KVNested) Serialize() (string, error) {
	wire := make(map[string]wireValue, len(k.entries))
	for key, v := range k.entries {
		wire[key] = toWire(v)
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DeserializeKVNested parses data produced by Serialize. Empty input
// yields the empty value.
func DeserializeKVNested(data string) (*KVNested, error) {
	k := NewKVNested()
	if data == "" {
		return k, nil
	}
	var wire map[string]wireValue
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, err
	}
	for key, w := range wire {
		v, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		k.entries[key] = v
	}
	return k, nil
}
