package flock

import (
	"os"
	"path/filepath"
	"strconv"

	nanogenerrors "github.com/mrz1836/nanogen/internal/errors"
)

// Lock is a held lock file.
type Lock struct {
	path string
	file *os.File
}

// TryLock creates path if needed and takes an exclusive lock on it without waiting.
// It returns an error wrapping ErrLockHeld when another process owns the lock.
// The holder's PID is written into the file to help diagnose stale builds.
func TryLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nanogenerrors.Wrap(err, "failed to create lock directory")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //#nosec G304 -- path is derived from the configured schema directory
	if err != nil {
		return nil, nanogenerrors.Wrap(err, "failed to open lock file")
	}

	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		if isContention(err) {
			return nil, nanogenerrors.Wrapf(nanogenerrors.ErrLockHeld, "lock %s", path)
		}
		return nil, nanogenerrors.Wrap(err, "failed to lock file")
	}

	if err := f.Truncate(0); err == nil {
		_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	return &Lock{path: path, file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. The file itself is left on disk;
// removing it would race with a process that has opened but not yet locked it.
// Release is safe to call on a nil Lock and more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	unlockErr := Unlock(f.Fd())
	closeErr := f.Close()
	if unlockErr != nil {
		return nanogenerrors.Wrap(unlockErr, "failed to unlock file")
	}
	return nanogenerrors.Wrap(closeErr, "failed to close lock file")
}
