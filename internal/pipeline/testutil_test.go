package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	nanogenerrors "github.com/mrz1836/nanogen/internal/errors"
	"github.com/mrz1836/nanogen/internal/resolver"
)

const (
	testSchemaDir  = "/fw/lib/NimBLEComm/proto"
	testOutputDir  = "/fw/lib/NimBLEComm/src"
	testSchemaPath = testSchemaDir + "/gaggimate.proto"
	testOptions    = testSchemaDir + "/gaggimate.options"
	testDescriptor = testSchemaDir + "/gaggimate.pb"
	testHeader     = testOutputDir + "/gaggimate.pb.h"
	testSource     = testOutputDir + "/gaggimate.pb.c"
	testGenerator  = "/usr/bin/nanopb_generator"

	compileLine  = "protoc --proto_path " + testSchemaDir + " --descriptor_set_out " + testDescriptor + " gaggimate.proto"
	generateLine = testGenerator + " --output-dir " + testOutputDir + " " + testDescriptor
)

// mockResponse describes what a mocked tool does when invoked.
type mockResponse struct {
	stdout   string
	stderr   string
	exitCode int
	err      error
	// writes are files created on the shared filesystem before returning.
	writes map[string]string
	// block waits for the context to end, simulating a hung tool.
	block bool
	// before runs when the command starts.
	before func()
}

// MockCommandRunner implements CommandRunner for testing.
// Unconfigured commands behave like executables that are not installed.
type MockCommandRunner struct {
	mu        sync.Mutex
	fs        afero.Fs
	responses map[string]mockResponse
	calls     []string
}

// NewMockCommandRunner creates a runner whose tools write into fs.
func NewMockCommandRunner(fs afero.Fs) *MockCommandRunner {
	return &MockCommandRunner{fs: fs, responses: make(map[string]mockResponse)}
}

// SetResponse configures the response for a command line.
func (m *MockCommandRunner) SetResponse(commandLine string, resp mockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[commandLine] = resp
}

// Run implements CommandRunner.
func (m *MockCommandRunner) Run(ctx context.Context, _ string, argv []string) (string, string, int, error) {
	key := CommandLine(argv)

	m.mu.Lock()
	m.calls = append(m.calls, key)
	resp, ok := m.responses[key]
	m.mu.Unlock()

	if !ok {
		return "", "", -1, fmt.Errorf("%w: %w", nanogenerrors.ErrCommandNotStarted, nanogenerrors.ErrCommandNotConfigured)
	}
	if resp.before != nil {
		resp.before()
	}
	if resp.block {
		<-ctx.Done()
		return resp.stdout, resp.stderr, -1, ctx.Err()
	}
	for path, content := range resp.writes {
		if err := afero.WriteFile(m.fs, path, []byte(content), 0o644); err != nil {
			return "", err.Error(), 1, err
		}
	}
	return resp.stdout, resp.stderr, resp.exitCode, resp.err
}

// Calls returns the recorded command lines.
func (m *MockCommandRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// countingResolver returns a fixed Resolution and counts calls.
type countingResolver struct {
	res   resolver.Resolution
	calls int
}

func (r *countingResolver) Resolve(context.Context) resolver.Resolution {
	r.calls++
	return r.res
}

// recordingObserver collects progress events.
type recordingObserver struct {
	events   []string
	warnings []string
}

func (o *recordingObserver) StageStarted(s Stage) {
	o.events = append(o.events, "start "+string(s.Name)+": "+s.CommandLine())
}

func (o *recordingObserver) StageFinished(s Stage, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	o.events = append(o.events, "finish "+string(s.Name)+": "+status)
}

func (o *recordingObserver) Warning(msg string) {
	o.warnings = append(o.warnings, msg)
}

// fakeLocker records lock use.
type fakeLocker struct {
	err      error
	paths    []string
	released int
}

func (l *fakeLocker) Lock(path string) (func() error, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return nil, l.err
	}
	return func() error {
		l.released++
		return nil
	}, nil
}

// stepClock advances by one second on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func testLayout() Layout {
	return Layout{
		SchemaDir:      testSchemaDir,
		SchemaFile:     "gaggimate.proto",
		OptionsFile:    "gaggimate.options",
		DescriptorFile: "gaggimate.pb",
		OutputDir:      testOutputDir,
	}
}

func testOptionsWith(mutate func(*Options)) Options {
	opts := Options{
		Layout:           testLayout(),
		Compiler:         "protoc",
		CompilerTimeout:  time.Minute,
		GeneratorTimeout: time.Minute,
		CleanOnFailure:   true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return opts
}

func resolvedGenerator() resolver.Resolution {
	return resolver.Resolved(&resolver.Tool{Kind: resolver.KindExecutable, Command: []string{testGenerator}})
}

// newFixture returns an in-memory project with schema and options in place.
func newFixture(t *testing.T) (afero.Fs, *MockCommandRunner) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testSchemaPath, []byte("syntax = \"proto3\";\nmessage Shot { float temperature = 1; }\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, testOptions, []byte("Shot.temperature fixed_length:true\n"), 0o644))
	return fs, NewMockCommandRunner(fs)
}

// workingTools configures a compiler and generator that behave correctly.
func workingTools(runner *MockCommandRunner) {
	runner.SetResponse(compileLine, mockResponse{
		writes: map[string]string{testDescriptor: "\n\x0fgaggimate.proto"},
	})
	runner.SetResponse(generateLine, mockResponse{
		stdout: "Writing to " + testHeader + " and " + testSource + "\n",
		writes: map[string]string{
			testHeader: "/* Automatically generated nanopb header */\n#include <pb.h>\n",
			testSource: "/* Automatically generated nanopb constant definitions */\n#include \"gaggimate.pb.h\"\n",
		},
	})
}

func newTestExecutor(fs afero.Fs, runner CommandRunner, mutate func(*Options)) *Executor {
	e := NewExecutorWith(testOptionsWith(mutate), runner, fs)
	e.SetClock(&stepClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)})
	return e
}

func fileExists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	return ok
}
