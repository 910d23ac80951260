package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/nanogen/internal/errors"
)

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Nil(t *testing.T) {
	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty schema dir", func(c *Config) { c.Schema.Dir = " " }, errors.ErrConfigInvalidSchema},
		{"empty schema file", func(c *Config) { c.Schema.File = "" }, errors.ErrConfigInvalidSchema},
		{"nested schema file", func(c *Config) { c.Schema.File = "sub/a.proto" }, errors.ErrPathTraversal},
		{"parent descriptor", func(c *Config) { c.Schema.Descriptor = ".." }, errors.ErrPathTraversal},
		{"absolute options", func(c *Config) { c.Schema.Options = "/etc/a.options" }, errors.ErrPathTraversal},
		{"descriptor equals schema", func(c *Config) { c.Schema.Descriptor = c.Schema.File }, errors.ErrConfigInvalidSchema},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, errors.ErrConfigInvalidOutput},
		{"empty compiler", func(c *Config) { c.Compiler.Command = "" }, errors.ErrConfigInvalidTool},
		{"negative compiler timeout", func(c *Config) { c.Compiler.Timeout = -1 }, errors.ErrConfigInvalidTool},
		{"empty interpreter", func(c *Config) { c.Generator.Interpreter = "" }, errors.ErrConfigInvalidTool},
		{"zero generator timeout", func(c *Config) { c.Generator.Timeout = 0 }, errors.ErrConfigInvalidTool},
		{"zero probe timeout", func(c *Config) { c.Generator.ProbeTimeout = 0 }, errors.ErrValueOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
