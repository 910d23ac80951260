package pipeline

import (
	"github.com/mrz1836/nanogen/internal/flock"
)

// Locker serializes runs against the same schema.
type Locker interface {
	// Lock acquires the lock at path without waiting and returns its release function.
	// Contention is reported as an error wrapping ErrLockHeld.
	Lock(path string) (release func() error, err error)
}

// FileLocker implements Locker with an OS file lock.
type FileLocker struct{}

// Lock implements Locker.
func (FileLocker) Lock(path string) (func() error, error) {
	l, err := flock.TryLock(path)
	if err != nil {
		return nil, err
	}
	return l.Release, nil
}

var _ Locker = FileLocker{}
