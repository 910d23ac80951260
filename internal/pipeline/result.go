package pipeline

import (
	"fmt"
	"time"

	nanogenerrors "github.com/mrz1836/nanogen/internal/errors"
)

// FailureKind classifies a failed run.
type FailureKind int

const (
	// FailureNone is the kind of a successful run.
	FailureNone FailureKind = iota

	// FailureMissingInput means the schema file was absent; nothing was spawned.
	FailureMissingInput

	// FailureToolNotFound means no generator was resolved; stage 1 still ran.
	FailureToolNotFound

	// FailureExternalTool means a stage process could not start, timed out or exited non-zero.
	FailureExternalTool

	// FailureIncompleteOutput means a stage exited zero without writing an expected file.
	FailureIncompleteOutput

	// FailureUnexpected means the orchestration itself failed: I/O, locking, cancellation.
	FailureUnexpected
)

// String returns the kind as shown to users.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureMissingInput:
		return "missing-input"
	case FailureToolNotFound:
		return "tool-not-found"
	case FailureExternalTool:
		return "external-tool-failure"
	case FailureIncompleteOutput:
		return "incomplete-output"
	case FailureUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (k FailureKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Sentinel returns the error every failure of this kind wraps.
func (k FailureKind) Sentinel() error {
	switch k {
	case FailureNone:
		return nil
	case FailureMissingInput:
		return nanogenerrors.ErrMissingInput
	case FailureToolNotFound:
		return nanogenerrors.ErrToolNotFound
	case FailureExternalTool:
		return nanogenerrors.ErrExternalTool
	case FailureIncompleteOutput:
		return nanogenerrors.ErrIncompleteOutput
	default:
		return nanogenerrors.ErrUnexpected
	}
}

// Result is the single outcome of a run. It is not modified after Run returns.
type Result struct {
	RunID   string `json:"run_id"`
	Success bool   `json:"success"`

	// Outputs lists the generated files on success, header first.
	Outputs []string `json:"outputs,omitempty"`

	// Kind, Stage, Command, Stdout, Stderr and Hint describe a failure.
	// Stdout and Stderr are the failing tool's output, unmodified.
	Kind     FailureKind `json:"kind,omitempty"`
	Stage    StageName   `json:"stage,omitempty"`
	Command  string      `json:"command,omitempty"`
	ExitCode int         `json:"exit_code,omitempty"`
	Stdout   string      `json:"stdout,omitempty"`
	Stderr   string      `json:"stderr,omitempty"`
	Message  string      `json:"message,omitempty"`
	Hint     string      `json:"hint,omitempty"`

	// Generator is the resolved generator command, empty when unresolved.
	Generator string `json:"generator,omitempty"`

	// Stages holds every stage that was started, in order.
	Stages []Stage `json:"stages"`

	Duration time.Duration `json:"duration_ns"`

	err error
}

// Err returns nil on success, or an error wrapping the failure kind's sentinel
// and, where it applies, ErrCommandNotStarted, ErrCommandTimeout, ErrLockHeld or
// the context error.
func (r *Result) Err() error {
	if r.Success {
		return nil
	}
	return r.err
}

// Failed returns the stage that failed, or nil.
func (r *Result) Failed() *Stage {
	if r.Success || r.Stage == "" {
		return nil
	}
	for i := len(r.Stages) - 1; i >= 0; i-- {
		if r.Stages[i].Name == r.Stage {
			return &r.Stages[i]
		}
	}
	return nil
}

// failure is a failed run under construction.
type failure struct {
	kind  FailureKind
	stage *Stage
	name  StageName
	// command is reported when the stage never started.
	command []string
	message string
	hint    string
	cause   error
}

// withStage attaches the stage whose diagnostics belong to the failure.
func (f *failure) withStage(stage *Stage) *failure {
	f.stage = stage
	return f
}

// err builds the error chain: kind sentinel first, then the cause.
func (f *failure) err() error {
	sentinel := f.kind.Sentinel()
	if f.cause == nil {
		return fmt.Errorf("%w: %s", sentinel, f.message)
	}
	return fmt.Errorf("%w: %s: %w", sentinel, f.message, f.cause)
}
