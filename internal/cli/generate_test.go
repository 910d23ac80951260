//go:build unix

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/nanogen/internal/constants"
	"github.com/mrz1836/nanogen/internal/errors"
)

func TestGenerate_EndToEnd(t *testing.T) {
	isolate(t)
	fakeTools(t, true)
	root := firmwareProject(t)

	output, err := execute(t, "generate", "--project-root", root)
	require.NoError(t, err)

	outDir := filepath.Join(root, constants.DefaultOutputDir)
	header := filepath.Join(outDir, "gaggimate.pb.h")
	source := filepath.Join(outDir, "gaggimate.pb.c")

	assert.FileExists(t, header)
	assert.FileExists(t, source)
	assert.FileExists(t, filepath.Join(root, constants.DefaultSchemaDir, constants.DefaultDescriptorFile))

	assert.Contains(t, output, "1/2 Compile")
	assert.Contains(t, output, "2/2 Generate")
	assert.Contains(t, output, "--descriptor_set_out")
	assert.Contains(t, output, "nanopb_generator --output-dir "+outDir)
	assert.Contains(t, output, "✓ Generated: "+header)
	assert.Contains(t, output, "✓ Generated: "+source)
}

func TestGenerate_SchemaFlags(t *testing.T) {
	isolate(t)
	fakeTools(t, true)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "proto", "telemetry.proto"), "syntax = \"proto3\";\n", 0o644)

	_, err := execute(t, "generate",
		"--project-root", root,
		"--schema-dir", "proto",
		"--schema", "telemetry.proto",
		"--output-dir", "gen",
	)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "gen", "telemetry.pb.h"))
	assert.FileExists(t, filepath.Join(root, "gen", "telemetry.pb.c"))
	assert.FileExists(t, filepath.Join(root, "proto", "telemetry.pb"))
	assert.NoFileExists(t, filepath.Join(root, "proto", constants.DefaultDescriptorFile))
}

func TestGenerate_MissingSchema(t *testing.T) {
	isolate(t)
	fakeTools(t, true)
	root := t.TempDir()

	output, err := execute(t, "generate", "--project-root", root)
	require.Error(t, err)

	require.ErrorIs(t, err, errors.ErrMissingInput)
	assert.True(t, isReported(err))
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, output, "missing-input")
	assert.NoDirExists(t, filepath.Join(root, constants.DefaultOutputDir))
}

func TestGenerate_NoGenerator(t *testing.T) {
	isolate(t)
	fakeTools(t, false)
	root := firmwareProject(t)

	output, err := execute(t, "generate", "--project-root", root)
	require.Error(t, err)

	require.ErrorIs(t, err, errors.ErrToolNotFound)
	assert.Contains(t, output, "tool-not-found")
	assert.Contains(t, output, "pip install nanopb")

	// Stage 1 still ran.
	assert.FileExists(t, filepath.Join(root, constants.DefaultSchemaDir, constants.DefaultDescriptorFile))
	assert.NoDirExists(t, filepath.Join(root, constants.DefaultOutputDir))
}

func TestGenerate_CompilerError(t *testing.T) {
	isolate(t)
	fakeTools(t, true)
	root := firmwareProject(t)

	// Replace protoc with one that rejects the schema.
	bin := os.Getenv("PATH")
	writeFile(t, filepath.Join(bin, constants.ToolProtoc),
		"#!/bin/sh\necho 'gaggimate.proto:3:1: Expected \"message\".' >&2\nexit 1\n", 0o755)

	output, err := execute(t, "generate", "--project-root", root)
	require.Error(t, err)

	require.ErrorIs(t, err, errors.ErrExternalTool)
	assert.Contains(t, output, "external-tool-failure")
	assert.Contains(t, output, `gaggimate.proto:3:1: Expected "message".`)
	assert.NotContains(t, output, "2/2 Generate")
}

func TestGenerate_JSONOutput(t *testing.T) {
	isolate(t)
	fakeTools(t, true)
	root := firmwareProject(t)

	output, err := execute(t, "generate", "--project-root", root, "--output", "json")
	require.NoError(t, err)

	var result struct {
		RunID   string   `json:"run_id"`
		Success bool     `json:"success"`
		Outputs []string `json:"outputs"`
		Stages  []struct {
			Name string `json:"name"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result), output)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Outputs, 2)
	require.Len(t, result.Stages, 2)
	assert.Equal(t, "compile", result.Stages[0].Name)
	assert.Equal(t, "generate", result.Stages[1].Name)
}

func TestGenerate_JSONFailure(t *testing.T) {
	isolate(t)
	fakeTools(t, true)
	root := t.TempDir()

	output, err := execute(t, "generate", "--project-root", root, "-o", "json")
	require.Error(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result), output)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "missing-input", result["kind"])
}

func TestGenerate_InvalidConfig(t *testing.T) {
	isolate(t)

	_, err := execute(t, "generate", "--schema", "../escape.proto")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
