package resolver

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentFromOS(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PATH", "/opt/tools:/usr/bin")

	env := EnvironmentFromOS(".", "")

	assert.True(t, filepath.IsAbs(env.ProjectRoot))
	assert.Equal(t, home, env.HomeDir)
	assert.Equal(t, "/opt/tools:/usr/bin", env.Path)
	assert.Equal(t, filepath.Join(home, ".platformio", "packages"), env.PackagesRoot)
}

func TestPackagesRootFor(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		home       string
		want       string
	}{
		{"default", "", "/home/dev", "/home/dev/.platformio/packages"},
		{"no home", "", "", ""},
		{"tilde", "~", "/home/dev", "/home/dev"},
		{"tilde prefix", "~/pio/packages", "/home/dev", "/home/dev/pio/packages"},
		{"absolute", "/srv/packages", "/home/dev", "/srv/packages"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, packagesRootFor(tc.configured, tc.home))
		})
	}
}

func TestEnvironment_LookPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeExecutable(t, fs, "/usr/bin/protoc")
	writeExecutable(t, fs, "/usr/local/bin/protoc")
	writePlain(t, fs, "/usr/local/bin/python")
	writeExecutable(t, fs, "/usr/bin/python")
	writeExecutable(t, fs, "/work/firmware/tools/protoc")
	require.NoError(t, fs.MkdirAll("/usr/local/bin/nanopb_generator", 0o755))

	env := testEnv()

	t.Run("first PATH entry wins", func(t *testing.T) {
		path, ok := env.LookPath(fs, "protoc")
		require.True(t, ok)
		assert.Equal(t, "/usr/local/bin/protoc", path)
	})

	t.Run("skips non-executable files", func(t *testing.T) {
		path, ok := env.LookPath(fs, "python")
		require.True(t, ok)
		assert.Equal(t, "/usr/bin/python", path)
	})

	t.Run("skips directories", func(t *testing.T) {
		_, ok := env.LookPath(fs, "nanopb_generator")
		assert.False(t, ok)
	})

	t.Run("relative path resolves against project root", func(t *testing.T) {
		path, ok := env.LookPath(fs, "tools/protoc")
		require.True(t, ok)
		assert.Equal(t, "/work/firmware/tools/protoc", path)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := env.LookPath(fs, "clang")
		assert.False(t, ok)
	})

	t.Run("empty PATH", func(t *testing.T) {
		empty := env
		empty.Path = ""
		_, ok := empty.LookPath(fs, "protoc")
		assert.False(t, ok)
	})
}
