package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigPath(t *testing.T) {
	home := isolateHome(t)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".nanogen", "config.yaml"), path)
}

func TestProjectConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".nanogen", "config.yaml"), ProjectConfigPath())
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/dev"},
		{"~/.platformio/packages", "/home/dev/.platformio/packages"},
		{"/opt/pio", "/opt/pio"},
		{"relative/~", "relative/~"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ExpandHome(tc.in, "/home/dev"))
		})
	}
}
