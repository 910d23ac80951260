package config

import (
	"path/filepath"
	"strings"

	"github.com/mrz1836/nanogen/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - schema.dir, output.dir and every file name must not be empty
//   - schema.file, schema.options and schema.descriptor must be plain file names
//   - compiler.command and generator candidates must not be empty
//   - all timeouts must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSchemaConfig(&cfg.Schema); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return errors.Wrap(errors.ErrConfigInvalidOutput, "output.dir must not be empty")
	}

	if err := validateCompilerConfig(&cfg.Compiler); err != nil {
		return err
	}

	return validateGeneratorConfig(&cfg.Generator)
}

func validateSchemaConfig(cfg *SchemaConfig) error {
	if strings.TrimSpace(cfg.Dir) == "" {
		return errors.Wrap(errors.ErrConfigInvalidSchema, "schema.dir must not be empty")
	}

	names := []struct {
		key   string
		value string
	}{
		{"schema.file", cfg.File},
		{"schema.options", cfg.Options},
		{"schema.descriptor", cfg.Descriptor},
	}
	for _, n := range names {
		if err := validateFileName(n.key, n.value); err != nil {
			return err
		}
	}

	if cfg.File == cfg.Descriptor {
		return errors.Wrapf(errors.ErrConfigInvalidSchema,
			"schema.descriptor must differ from schema.file, both are %q", cfg.File)
	}

	return nil
}

// validateFileName requires a non-empty name that stays inside its directory.
func validateFileName(key, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrapf(errors.ErrConfigInvalidSchema, "%s: %s", key, errors.ErrEmptyValue.Error())
	}
	if filepath.IsAbs(name) || name != filepath.Base(name) || name == ".." || name == "." {
		return errors.Wrapf(errors.ErrPathTraversal, "%s must be a plain file name, got %q", key, name)
	}
	return nil
}

func validateCompilerConfig(cfg *CompilerConfig) error {
	if strings.TrimSpace(cfg.Command) == "" {
		return errors.Wrap(errors.ErrConfigInvalidTool, "compiler.command must not be empty")
	}
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidTool,
			"compiler.timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}

func validateGeneratorConfig(cfg *GeneratorConfig) error {
	required := []struct {
		key   string
		value string
	}{
		{"generator.module", cfg.Module},
		{"generator.executable", cfg.Executable},
		{"generator.interpreter", cfg.Interpreter},
		{"generator.package_pattern", cfg.PackagePattern},
		{"generator.script", cfg.Script},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Wrapf(errors.ErrConfigInvalidTool, "%s must not be empty", r.key)
		}
	}

	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidTool,
			"generator.timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.ProbeTimeout <= 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"generator.probe_timeout must be positive, got %s", cfg.ProbeTimeout)
	}
	return nil
}
