package crdt

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RowStore is a collection of records of type T, each addressed by a
// stable UUID minted on Insert. Logically it is a KVOverWrite whose
// values are serialized T blobs: merge is KVOverWrite's merge, so updates
// to the same ID are last-writer-wins by topological order, different IDs
// always coexist, and tombstones outrank concurrent updates.
type RowStore[T any] struct {
	kv *KVOverWrite
}

// NewRowStore returns the distinguished empty value.
func NewRowStore[T any]() *RowStore[T] {
	return &RowStore[T]{kv: NewKVOverWrite()}
}

// Insert mints a fresh UUID, stores value under it, and returns the ID.
// Insertion into a RowStore always succeeds.
func (r *RowStore[T]) Insert(value T) (string, error) {
	id := uuid.New().String()
	if err := r.Set(id, value); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the record at id, or an error wrapping dberrors.ErrNotFound
// if id is absent or tombstoned.
func (r *RowStore[T]) Get(id string) (T, error) {
	var zero T
	raw, ok := r.kv.Get(id)
	if !ok {
		return zero, notFoundErr(id)
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return zero, invalidOperationErr(id, "corrupt record: "+err.Error())
	}
	return value, nil
}

// Set overwrites the record at id.
func (r *RowStore[T]) Set(id string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return invalidOperationErr(id, "cannot serialize record: "+err.Error())
	}
	r.kv.Set(id, string(b))
	return nil
}

// Remove tombstones id. A subsequent Get returns NotFound.
func (r *RowStore[T]) Remove(id string) {
	r.kv.Remove(id)
}

// IDs returns every live (non-tombstoned) record ID.
func (r *RowStore[T]) IDs() []string {
	return r.kv.Keys()
}

// Search scans every live record and returns the (id, value) pairs for
// which predicate returns true. Records that fail to deserialize are
// skipped rather than aborting the scan.
func (r *RowStore[T]) Search(predicate func(T) bool) ([]RowMatch[T], error) {
	var out []RowMatch[T]
	for _, id := range r.kv.Keys() {
		value, err := r.Get(id)
		if err != nil {
			continue
		}
		if predicate(value) {
			out = append(out, RowMatch[T]{ID: id, Value: value})
		}
	}
	return out, nil
}

// RowMatch pairs a record with its stable ID, as returned by Search.
type RowMatch[T any] struct {
	ID    string
	Value T
}

// Merge folds other on top of the receiver using KVOverWrite's merge.
func (r *RowStore[T]) Merge(other *RowStore[T]) *RowStore[T] {
	return &RowStore[T]{kv: r.kv.Merge(other.kv)}
}

// Serialize returns the CRDT's canonical JSON encoding (that of the
// underlying KVOverWrite).
func (r *RowStore[T]) Serialize() (string, error) {
	return r.kv.Serialize()
}

// DeserializeRowStore parses data produced by Serialize.
func DeserializeRowStore[T any](data string) (*RowStore[T], error) {
	kv, err := DeserializeKVOverWrite(data)
	if err != nil {
		return nil, err
	}
	return &RowStore[T]{kv: kv}, nil
}
