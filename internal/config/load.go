package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/nanogen/internal/constants"
	"github.com/mrz1836/nanogen/internal/errors"
)

// newViperInstance creates a Viper instance with the NANOGEN_ env prefix,
// key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("schema.dir", cfg.Schema.Dir).
		Str("schema.file", cfg.Schema.File).
		Str("output.dir", cfg.Output.Dir).
		Dur("compiler.timeout", cfg.Compiler.Timeout).
		Dur("generator.timeout", cfg.Generator.Timeout).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence:
// environment, project config (.nanogen/config.yaml in the working directory),
// global config (~/.nanogen/config.yaml), defaults.
//
// Missing config files are not errors; most projects run on defaults.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := mergeConfigFile(v, ProjectConfigPath(), "project"); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(ctx, v)
}

// LoadFromPaths loads configuration from specific file paths.
// Either path can be empty to skip that level; the project file wins over the global one.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		if err := mergeConfigFile(v, globalConfigPath, "global"); err != nil {
			return nil, err
		}
	}

	if projectConfigPath != "" {
		if err := mergeConfigFile(v, projectConfigPath, "project"); err != nil {
			return nil, err
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// LoadWithOverrides loads configuration from configPath (or the default
// locations when empty) and applies CLI flag overrides on top.
//
// Only non-zero values in overrides are applied.
func LoadWithOverrides(ctx context.Context, configPath string, overrides *Config) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if configPath != "" {
		globalPath, _ := getGlobalConfigPathIfExists()
		cfg, err = LoadFromPaths(ctx, configPath, globalPath)
	} else {
		cfg, err = Load(ctx)
	}
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// loadGlobalConfig merges ~/.nanogen/config.yaml when it exists.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := getGlobalConfigPathIfExists()
	if !ok {
		return nil
	}
	return mergeConfigFile(v, globalConfigPath, "global")
}

// getGlobalConfigPathIfExists returns the global config path if it exists.
func getGlobalConfigPathIfExists() (string, bool) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		return "", false
	}
	if !fileExists(globalPath) {
		return "", false
	}
	return globalPath, true
}

// mergeConfigFile merges path into v. A path that does not exist is skipped.
func mergeConfigFile(v *viper.Viper, path, level string) error {
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrapf(err, "failed to read %s config file %s", level, path)
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: Keys must match the mapstructure tags exactly, and every key must
// be registered here for NANOGEN_* environment overrides to be picked up.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("project_root", d.ProjectRoot)

	v.SetDefault("schema.dir", d.Schema.Dir)
	v.SetDefault("schema.file", d.Schema.File)
	v.SetDefault("schema.options", d.Schema.Options)
	v.SetDefault("schema.descriptor", d.Schema.Descriptor)

	v.SetDefault("output.dir", d.Output.Dir)

	v.SetDefault("compiler.command", d.Compiler.Command)
	v.SetDefault("compiler.timeout", d.Compiler.Timeout.String())

	v.SetDefault("generator.module", d.Generator.Module)
	v.SetDefault("generator.executable", d.Generator.Executable)
	v.SetDefault("generator.interpreter", d.Generator.Interpreter)
	v.SetDefault("generator.venv_python", d.Generator.VenvPython)
	v.SetDefault("generator.packages_root", d.Generator.PackagesRoot)
	v.SetDefault("generator.package_pattern", d.Generator.PackagePattern)
	v.SetDefault("generator.script", d.Generator.Script)
	v.SetDefault("generator.timeout", d.Generator.Timeout.String())
	v.SetDefault("generator.probe_timeout", d.Generator.ProbeTimeout.String())

	v.SetDefault("pipeline.lock", d.Pipeline.Lock)
	v.SetDefault("pipeline.clean_on_failure", d.Pipeline.CleanOnFailure)
}

// applyOverrides merges non-zero override values into the config.
//
// Boolean fields cannot be overridden to false here because false is the zero
// value; the CLI handles boolean flags with cmd.Flags().Changed.
func applyOverrides(cfg, overrides *Config) {
	if overrides.ProjectRoot != "" {
		cfg.ProjectRoot = overrides.ProjectRoot
	}
	if overrides.Schema.Dir != "" {
		cfg.Schema.Dir = overrides.Schema.Dir
	}
	if overrides.Schema.File != "" {
		renameCompanions(&cfg.Schema, overrides.Schema.File)
		cfg.Schema.File = overrides.Schema.File
	}
	if overrides.Schema.Options != "" {
		cfg.Schema.Options = overrides.Schema.Options
	}
	if overrides.Schema.Descriptor != "" {
		cfg.Schema.Descriptor = overrides.Schema.Descriptor
	}
	if overrides.Output.Dir != "" {
		cfg.Output.Dir = overrides.Output.Dir
	}
	if overrides.Compiler.Timeout != 0 {
		cfg.Compiler.Timeout = overrides.Compiler.Timeout
	}
	if overrides.Generator.Timeout != 0 {
		cfg.Generator.Timeout = overrides.Generator.Timeout
	}
}

// renameCompanions moves the descriptor and options names to the new schema
// stem when they were named after the old one. Names configured independently
// of the schema are left alone.
func renameCompanions(schema *SchemaConfig, file string) {
	oldStem := schemaStem(schema.File)
	newStem := schemaStem(file)
	if schema.Descriptor == oldStem+constants.DescriptorExt {
		schema.Descriptor = newStem + constants.DescriptorExt
	}
	if schema.Options == oldStem+constants.OptionsExt {
		schema.Options = newStem + constants.OptionsExt
	}
}

// schemaStem returns the schema file name without directory or extension.
func schemaStem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// viperDecoderOption configures mapstructure to decode durations from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

// ProjectPath resolves p against the configured project root unless it is absolute.
func (c *Config) ProjectPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.ProjectRoot, p)
}
