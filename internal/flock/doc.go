// Package flock provides exclusive, non-blocking file locks on Unix and Windows.
//
// The pipeline holds one lock file per schema so two builds started at the same
// time (an IDE save hook and a CI step, for example) cannot write the same
// generated sources concurrently.
//
// Usage:
//
//	lock, err := flock.TryLock(path)
//	if errors.Is(err, nanogenerrors.ErrLockHeld) {
//	    // another run owns the schema
//	}
//	defer lock.Release()
package flock
