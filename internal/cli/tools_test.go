//go:build unix

package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/nanogen/internal/errors"
)

func TestTools_Ready(t *testing.T) {
	isolate(t)
	fakeTools(t, true)
	root := t.TempDir()

	output, err := execute(t, "tools", "--project-root", root)
	require.NoError(t, err)

	assert.Contains(t, output, "protoc")
	assert.Contains(t, output, "25.1")
	assert.Contains(t, output, "0.4.8")
	assert.Contains(t, output, "← selected")
	assert.Contains(t, output, "✓ Ready to generate")
}

func TestTools_NothingInstalled(t *testing.T) {
	isolate(t)
	t.Setenv("PATH", t.TempDir())
	root := t.TempDir()

	output, err := execute(t, "tools", "--project-root", root)
	require.Error(t, err)

	require.ErrorIs(t, err, errors.ErrMissingRequiredTools)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, output, "✗ Not ready")
	assert.NotContains(t, output, "selected")
}

func TestTools_JSON(t *testing.T) {
	isolate(t)
	fakeTools(t, true)
	root := t.TempDir()

	output, err := execute(t, "tools", "--project-root", root, "-o", "json")
	require.NoError(t, err)

	var report struct {
		Ready    bool `json:"ready"`
		Compiler struct {
			Status string `json:"status"`
		} `json:"compiler"`
		Generators []struct {
			Kind     string `json:"kind"`
			Status   string `json:"status"`
			Selected bool   `json:"selected"`
		} `json:"generators"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &report), output)

	assert.True(t, report.Ready)
	assert.Equal(t, "found", report.Compiler.Status)
	require.Len(t, report.Generators, 4)
	assert.Equal(t, "venv", report.Generators[0].Kind)
	assert.Equal(t, "missing", report.Generators[0].Status)
	assert.Equal(t, "executable", report.Generators[1].Kind)
	assert.True(t, report.Generators[1].Selected)
}
