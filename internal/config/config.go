// Package config provides configuration management for nanogen with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (NANOGEN_* prefix, dots become underscores)
//  3. Project config (.nanogen/config.yaml)
//  4. Global config (~/.nanogen/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for nanogen.
type Config struct {
	// ProjectRoot is the firmware project root. Relative schema and output
	// directories, and the project-local virtual environment, are resolved against it.
	// Default: "."
	ProjectRoot string `yaml:"project_root" mapstructure:"project_root"`

	// Schema describes where the schema lives and what stage 1 writes.
	Schema SchemaConfig `yaml:"schema" mapstructure:"schema"`

	// Output describes where stage 2 writes the generated sources.
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Compiler configures the stage 1 schema compiler.
	Compiler CompilerConfig `yaml:"compiler" mapstructure:"compiler"`

	// Generator configures discovery and invocation of the stage 2 generator.
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`

	// Pipeline holds run-wide behavior switches.
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
}

// SchemaConfig contains the schema input layout.
type SchemaConfig struct {
	// Dir is the directory containing the schema and options files.
	// It is also the working directory of both stages.
	// Default: "lib/NimBLEComm/proto"
	Dir string `yaml:"dir" mapstructure:"dir"`

	// File is the schema file name inside Dir.
	// Default: "gaggimate.proto"
	File string `yaml:"file" mapstructure:"file"`

	// Options is the nanopb options file name inside Dir. Optional on disk.
	// Default: "gaggimate.options"
	Options string `yaml:"options" mapstructure:"options"`

	// Descriptor is the binary descriptor file name written inside Dir by stage 1.
	// Default: "gaggimate.pb"
	Descriptor string `yaml:"descriptor" mapstructure:"descriptor"`
}

// OutputConfig contains the generated source layout.
type OutputConfig struct {
	// Dir is the directory receiving <stem>.pb.h and <stem>.pb.c.
	// Default: "lib/NimBLEComm/src"
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// CompilerConfig configures the schema compiler.
type CompilerConfig struct {
	// Command is the compiler executable.
	// Default: "protoc"
	Command string `yaml:"command" mapstructure:"command"`

	// Timeout bounds the compiler invocation.
	// Default: 2 minutes
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// GeneratorConfig configures generator discovery and invocation.
type GeneratorConfig struct {
	// Module is the module path used by the venv and module probes.
	// Default: "nanopb.generator.nanopb_generator"
	Module string `yaml:"module" mapstructure:"module"`

	// Executable is the standalone generator looked up on PATH.
	// Default: "nanopb_generator"
	Executable string `yaml:"executable" mapstructure:"executable"`

	// Interpreter runs the module and package-cache candidates.
	// Default: "python"
	Interpreter string `yaml:"interpreter" mapstructure:"interpreter"`

	// VenvPython is the project-local interpreter, relative to the project root.
	// Default: ".venv/bin/python"
	VenvPython string `yaml:"venv_python" mapstructure:"venv_python"`

	// PackagesRoot is the package manager cache searched last.
	// A leading "~" expands to the home directory.
	// Default: "" (meaning ~/.platformio/packages)
	PackagesRoot string `yaml:"packages_root" mapstructure:"packages_root"`

	// PackagePattern is matched case-insensitively against cache directory names.
	// Default: "nanopb"
	PackagePattern string `yaml:"package_pattern" mapstructure:"package_pattern"`

	// Script is the generator script path inside a matching cache directory.
	// Default: "generator/nanopb_generator.py"
	Script string `yaml:"script" mapstructure:"script"`

	// Timeout bounds the generator invocation.
	// Default: 5 minutes
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ProbeTimeout bounds each liveness check during discovery.
	// Default: 15 seconds
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
}

// PipelineConfig contains run-wide switches.
type PipelineConfig struct {
	// Lock serializes concurrent runs against the same schema with a lock file.
	// Default: true
	Lock bool `yaml:"lock" mapstructure:"lock"`

	// CleanOnFailure deletes generated artifacts left behind by a failed stage 2.
	// Default: true
	CleanOnFailure bool `yaml:"clean_on_failure" mapstructure:"clean_on_failure"`
}
