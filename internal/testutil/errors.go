// Package testutil provides testing utilities for nanogen.
//
// This package contains mock errors shared by test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors simulate process and filesystem failures in tests.
var (
	// ErrMockExitStatus1 mimics the error os/exec returns for a tool exiting with code 1.
	ErrMockExitStatus1 = errors.New("exit status 1")

	// ErrMockExitStatus2 mimics the error os/exec returns for a tool exiting with code 2.
	ErrMockExitStatus2 = errors.New("exit status 2")

	// ErrMockDiskFull simulates a write failing on a full disk.
	ErrMockDiskFull = errors.New("no space left on device")

	// ErrMockToolFailed is a generic tool failure for output rendering tests.
	ErrMockToolFailed = errors.New("tool failed")
)
