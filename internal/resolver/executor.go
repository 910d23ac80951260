package resolver

import (
	"context"
	"os/exec"
)

// CommandExecutor abstracts the short-lived liveness checks for testability.
type CommandExecutor interface {
	// Run executes name with args in dir and returns its combined output.
	// A non-zero exit is reported as a non-nil error.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor using os/exec.
type DefaultCommandExecutor struct{}

// Run executes a command and returns its combined output.
func (e *DefaultCommandExecutor) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	// Probes must never wait on the terminal.
	cmd.Stdin = nil
	output, err := cmd.CombinedOutput()
	return string(output), err
}

var _ CommandExecutor = (*DefaultCommandExecutor)(nil)
