// Package errors provides centralized error handling for nanogen.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Pipeline failure kinds. Every failed run carries exactly one of these in its chain.
var (
	// ErrMissingInput indicates that a required schema file was absent before stage 1.
	ErrMissingInput = errors.New("missing input")

	// ErrToolNotFound indicates that no discovery strategy resolved a usable generator.
	ErrToolNotFound = errors.New("code generation tool not found")

	// ErrExternalTool indicates that a stage's process could not run or exited non-zero.
	ErrExternalTool = errors.New("external tool failed")

	// ErrIncompleteOutput indicates that a stage exited zero but an expected artifact is missing.
	ErrIncompleteOutput = errors.New("generation succeeded by exit code but incomplete output")

	// ErrUnexpected indicates a failure in the orchestration itself (I/O, permissions, cancellation).
	ErrUnexpected = errors.New("unexpected pipeline error")
)

// Command execution errors.
var (
	// ErrCommandNotStarted indicates the external process could not be started
	// (executable missing or not runnable).
	ErrCommandNotStarted = errors.New("command could not be started")

	// ErrCommandTimeout indicates a command exceeded its timeout duration.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrCommandNotConfigured indicates that a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrEmptyCommand indicates that an empty command vector was passed to a runner.
	ErrEmptyCommand = errors.New("empty command")
)

// Configuration and CLI errors.
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSchema indicates an invalid schema configuration value.
	ErrConfigInvalidSchema = errors.New("invalid schema configuration")

	// ErrConfigInvalidOutput indicates an invalid output configuration value.
	ErrConfigInvalidOutput = errors.New("invalid output configuration")

	// ErrConfigInvalidTool indicates an invalid compiler or generator configuration value.
	ErrConfigInvalidTool = errors.New("invalid tool configuration")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrPathTraversal indicates a relative path that escapes its base directory.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrLockHeld indicates that another nanogen run holds the lock for the same schema.
	ErrLockHeld = errors.New("another generation run is in progress")

	// ErrMissingRequiredTools indicates that the tool survey found a required tool missing.
	ErrMissingRequiredTools = errors.New("required tools are missing")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
