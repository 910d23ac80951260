package resolver

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/nanogen/internal/errors"
)

// MockCommandExecutor is a test double for CommandExecutor.
// Responses are keyed by the full command line; every call is recorded.
type MockCommandExecutor struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []string
}

type mockResponse struct {
	output string
	err    error
	block  bool
}

// NewMockCommandExecutor creates a new mock executor.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{responses: make(map[string]mockResponse)}
}

// SetRun configures the response for a command line.
func (m *MockCommandExecutor) SetRun(commandLine, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[commandLine] = mockResponse{output: output, err: err}
}

// SetBlocking makes commandLine block until its context expires.
func (m *MockCommandExecutor) SetBlocking(commandLine string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[commandLine] = mockResponse{block: true}
}

// Run implements CommandExecutor.
func (m *MockCommandExecutor) Run(ctx context.Context, _, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")

	m.mu.Lock()
	m.calls = append(m.calls, key)
	resp, ok := m.responses[key]
	m.mu.Unlock()

	if !ok {
		return "", errors.ErrCommandNotConfigured
	}
	if resp.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return resp.output, resp.err
}

// Calls returns the recorded command lines.
func (m *MockCommandExecutor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// fakeProbe counts invocations and returns a fixed outcome.
type fakeProbe struct {
	kind  LocatorKind
	tool  *Tool
	mu    sync.Mutex
	calls int
}

func (p *fakeProbe) Kind() LocatorKind { return p.kind }

func (p *fakeProbe) Probe(_ context.Context, _ System) (*Tool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.tool, p.tool != nil
}

func (p *fakeProbe) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

// testEnv is the environment snapshot used with an in-memory filesystem.
func testEnv() Environment {
	return Environment{
		ProjectRoot:  "/work/firmware",
		HomeDir:      "/home/dev",
		Path:         "/usr/local/bin:/usr/bin",
		PackagesRoot: "/home/dev/.platformio/packages",
	}
}

func writeExecutable(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte("#!/bin/sh\n"), 0o755))
}

func writePlain(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte("# script\n"), 0o644))
}
