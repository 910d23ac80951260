package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/nanogen/internal/constants"
)

// isolate points every home-relative path at temp dirs and disables color.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(CloseLogFile)
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// writeFile writes content to path, creating parent directories.
func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

const fakeProtoc = `#!/bin/sh
if [ "$1" = "--version" ]; then echo "libprotoc 25.1"; exit 0; fi
# --proto_path DIR --descriptor_set_out FILE SCHEMA
printf 'descriptor' > "$4"
`

const fakeGenerator = `#!/bin/sh
if [ "$1" = "--version" ]; then echo "nanopb_generator.py version 0.4.8"; exit 0; fi
# --output-dir DIR DESCRIPTOR
d=${3##*/}
stem=${d%.pb}
printf '/* header */\n' > "$2/$stem.pb.h"
printf '/* source */\n' > "$2/$stem.pb.c"
`

// fakeTools installs shell stand-ins for protoc and the generator on a fresh PATH.
func fakeTools(t *testing.T, withGenerator bool) {
	t.Helper()

	bin := t.TempDir()
	writeFile(t, filepath.Join(bin, constants.ToolProtoc), fakeProtoc, 0o755)
	if withGenerator {
		writeFile(t, filepath.Join(bin, constants.ToolNanopbGenerator), fakeGenerator, 0o755)
	}
	t.Setenv("PATH", bin)
}

// firmwareProject creates a project root with the default schema layout.
func firmwareProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	schemaDir := filepath.Join(root, constants.DefaultSchemaDir)
	writeFile(t, filepath.Join(schemaDir, constants.DefaultSchemaFile), "syntax = \"proto3\";\n", 0o644)
	writeFile(t, filepath.Join(schemaDir, constants.DefaultOptionsFile), "*.max_size: 32\n", 0o644)
	return root
}
