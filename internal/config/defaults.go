package config

import (
	"github.com/mrz1836/nanogen/internal/constants"
)

// DefaultConfig returns a new Config matching the firmware project layout.
// These defaults are the base layer overridden by config files, environment
// variables and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		ProjectRoot: ".",
		Schema: SchemaConfig{
			Dir:        constants.DefaultSchemaDir,
			File:       constants.DefaultSchemaFile,
			Options:    constants.DefaultOptionsFile,
			Descriptor: constants.DefaultDescriptorFile,
		},
		Output: OutputConfig{
			Dir: constants.DefaultOutputDir,
		},
		Compiler: CompilerConfig{
			Command: constants.ToolProtoc,
			Timeout: constants.DefaultCompilerTimeout,
		},
		Generator: GeneratorConfig{
			Module:         constants.NanopbGeneratorModule,
			Executable:     constants.ToolNanopbGenerator,
			Interpreter:    constants.ToolPython,
			VenvPython:     constants.VenvPython,
			PackagesRoot:   "",
			PackagePattern: constants.NanopbPackagePattern,
			Script:         constants.NanopbGeneratorScript,
			Timeout:        constants.DefaultGeneratorTimeout,
			ProbeTimeout:   constants.DefaultProbeTimeout,
		},
		Pipeline: PipelineConfig{
			Lock:           true,
			CleanOnFailure: true,
		},
	}
}
