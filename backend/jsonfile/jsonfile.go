// Package jsonfile implements a file-backed Backend: the same
// map-from-ID-to-canonical-Entry-JSON shape as backend/memory, persisted
// to disk and guarded cross-process by github.com/gofrs/flock (matching
// nanostore/store/filelock.go's FlockWrapper/FlockFactory idiom) and
// in-process by the same storage.LockManager discipline memory.Memory
// uses. This is an additional concrete Backend, not a change to the core
// contract: spec.md keeps concrete on-disk backends out of the core's
// scope while leaving the pluggable interface in scope.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/eidetica/eideticadb/backend"
	"github.com/eidetica/eideticadb/backend/memory"
	"github.com/eidetica/eideticadb/dberrors"
	"github.com/eidetica/eideticadb/entry"
)

const (
	lockRetryInterval = 50 * time.Millisecond
	lockTimeout       = 3 * time.Second
)

// Backend persists Entries to a JSON file at path, guarded by a sibling
// path+".lock" file.
type Backend struct {
	path        string
	lockPath    string
	lockFactory FileLockFactory
	mem         *memory.Memory
}

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithLockFactory overrides the FileLockFactory, primarily for tests.
func WithLockFactory(f FileLockFactory) Option {
	return func(b *Backend) { b.lockFactory = f }
}

// Open loads path into a fresh Backend if it exists, or starts empty if it
// does not. Reads are served from this in-process snapshot: a write made
// by another process to the same path after Open is not visible until
// this Backend is reopened.
func Open(path string, opts ...Option) (*Backend, error) {
	b := &Backend{
		path:        path,
		lockPath:    path + ".lock",
		lockFactory: FlockFactory{},
		mem:         memory.New(),
	}
	for _, opt := range opts {
		opt(b)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, dberrors.NewIoError("open", err)
	}
	if len(data) == 0 {
		return b, nil
	}
	if err := b.mem.Load(data); err != nil {
		return nil, err
	}
	return b, nil
}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) withFileLock(fn func() error) error {
	lock := b.lockFactory.New(b.lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return dberrors.NewIoError("lock", err)
	}
	if !locked {
		return dberrors.NewIoError("lock", fmt.Errorf("timed out acquiring %s", b.lockPath))
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

func (b *Backend) persist() error {
	return b.withFileLock(func() error {
		data, err := b.mem.Dump()
		if err != nil {
			return dberrors.NewSerializationError("dump", err)
		}
		if err := os.WriteFile(b.path, data, 0o644); err != nil {
			return dberrors.NewIoError("write", err)
		}
		return nil
	})
}

// Get implements backend.Backend.
func (b *Backend) Get(id string) (entry.Entry, error) { return b.mem.Get(id) }

// Put implements backend.Backend. It persists the new Entry set to disk
// under the cross-process file lock before returning.
func (b *Backend) Put(e entry.Entry) error {
	if err := b.mem.Put(e); err != nil {
		return err
	}
	return b.persist()
}

// GetTips implements backend.Backend.
func (b *Backend) GetTips(treeID string) ([]string, error) { return b.mem.GetTips(treeID) }

// GetSubtreeTips implements backend.Backend.
func (b *Backend) GetSubtreeTips(treeID, name string) ([]string, error) {
	return b.mem.GetSubtreeTips(treeID, name)
}

// AllRoots implements backend.Backend.
func (b *Backend) AllRoots() ([]string, error) { return b.mem.AllRoots() }

// GetTree implements backend.Backend.
func (b *Backend) GetTree(treeID string) ([]entry.Entry, error) { return b.mem.GetTree(treeID) }

// GetSubtree implements backend.Backend.
func (b *Backend) GetSubtree(treeID, name string) ([]entry.Entry, error) {
	return b.mem.GetSubtree(treeID, name)
}
