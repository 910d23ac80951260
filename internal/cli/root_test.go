package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nanogenerrors "github.com/mrz1836/nanogen/internal/errors"
)

func TestRootCmd_Help(t *testing.T) {
	isolate(t)

	output, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "nanogen")
	assert.Contains(t, output, "generate")
	assert.Contains(t, output, "tools")
	assert.Contains(t, output, "--output")
	assert.Contains(t, output, "--verbose")
	assert.Contains(t, output, "--quiet")
	assert.Contains(t, output, "--config")
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		info           BuildInfo
		expectContains []string
	}{
		{
			name:           "full version info",
			info:           BuildInfo{Version: "1.0.0", Commit: "abc1234", Date: "2026-01-01"},
			expectContains: []string{"1.0.0", "abc1234", "2026-01-01"},
		},
		{
			name:           "default dev version",
			info:           BuildInfo{},
			expectContains: []string{"dev", "none", "unknown"},
		},
		{
			name:           "partial version info",
			info:           BuildInfo{Version: "2.0.0-beta"},
			expectContains: []string{"2.0.0-beta", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd := newRootCmd(&GlobalFlags{}, tc.info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"--version"})

			require.NoError(t, cmd.Execute())
			for _, expected := range tc.expectContains {
				assert.Contains(t, buf.String(), expected)
			}
		})
	}
}

func TestRootCmd_InvalidInput(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"invalid output format", []string{"tools", "--output", "xml"}},
		{"verbose and quiet", []string{"tools", "-v", "-q"}},
		{"unknown flag", []string{"generate", "--bogus"}},
		{"unknown command", []string{"compile"}},
		{"positional argument", []string{"generate", "extra"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
		})
	}
}

func TestReportError(t *testing.T) {
	t.Run("prints message and action", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, fmt.Errorf("load: %w", nanogenerrors.ErrLockHeld))

		assert.Contains(t, buf.String(), "Error: load: another generation run is in progress")
		assert.Contains(t, buf.String(), "pipeline.lock")
	})

	t.Run("skips errors already reported", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, markReported(nanogenerrors.ErrMissingInput))
		assert.Empty(t, buf.String())
	})

	t.Run("plain errors have no action line", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, errors.New("boom"))
		assert.Equal(t, "Error: boom\n", buf.String())
	})
}
