package jsonfile

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is the cross-process locking primitive the jsonfile Backend
// uses to guard its on-disk snapshot. It exists as an interface, rather
// than a direct dependency on *flock.Flock, so tests can substitute a
// fake.
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock, retrying at
	// retryInterval until ctx is done.
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock.
	Unlock() error
}

// FileLockFactory creates FileLock instances bound to a path.
type FileLockFactory interface {
	New(path string) FileLock
}

// flockWrapper adapts github.com/gofrs/flock to FileLock.
type flockWrapper struct {
	flock *flock.Flock
}

func (f *flockWrapper) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	return f.flock.TryLockContext(ctx, retryInterval)
}

func (f *flockWrapper) Unlock() error {
	return f.flock.Unlock()
}

// FlockFactory is the default FileLockFactory, backed by gofrs/flock.
type FlockFactory struct{}

// New implements FileLockFactory.
func (FlockFactory) New(path string) FileLock {
	return &flockWrapper{flock: flock.New(path)}
}
