package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	nanogenerrors "github.com/mrz1836/nanogen/internal/errors"
)

// CommandRunner runs one external tool. Implementations must not read from the terminal.
type CommandRunner interface {
	// Run executes argv in workDir.
	// A process that could not be started is reported as an error wrapping
	// ErrCommandNotStarted with exit code -1. A process that ran and exited
	// non-zero is reported with its exit code and a non-nil error.
	Run(ctx context.Context, workDir string, argv []string) (stdout, stderr string, exitCode int, err error)
}

// DefaultCommandRunner implements CommandRunner using os/exec.
// No shell is involved: argv[0] is executed directly.
type DefaultCommandRunner struct {
	// LiveOutput, when set, receives stdout and stderr as they are produced
	// while the output is also captured.
	LiveOutput io.Writer
}

// Run executes argv and captures its output.
func (r *DefaultCommandRunner) Run(ctx context.Context, workDir string, argv []string) (stdout, stderr string, exitCode int, err error) {
	if len(argv) == 0 {
		return "", "", -1, nanogenerrors.ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //#nosec G204 -- argv comes from configuration and tool discovery
	cmd.Dir = workDir
	cmd.Stdin = nil

	var outBuf, errBuf bytes.Buffer
	if r.LiveOutput != nil {
		cmd.Stdout = io.MultiWriter(&outBuf, r.LiveOutput)
		cmd.Stderr = io.MultiWriter(&errBuf, r.LiveOutput)
	} else {
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf
	}

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err == nil {
		return stdout, stderr, 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout, stderr, exitErr.ExitCode(), err
	}
	if ctx.Err() != nil {
		return stdout, stderr, -1, ctx.Err()
	}
	return stdout, stderr, -1, fmt.Errorf("%w: %w", nanogenerrors.ErrCommandNotStarted, err)
}

var _ CommandRunner = (*DefaultCommandRunner)(nil)
