// Package constants provides centralized constant values used throughout nanogen.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory and file names used by nanogen for its own data.
const (
	// NanogenHome is the hidden directory name where nanogen keeps its config and logs.
	// It exists both in the user's home directory and in the project root.
	NanogenHome = ".nanogen"

	// LogsDir is the directory name under NanogenHome where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "nanogen.log"

	// ConfigFileName is the name of both the global and the project config file.
	ConfigFileName = "config.yaml"

	// LockFileSuffix is appended to the descriptor name to form the run lock file.
	LockFileSuffix = ".lock"

	// EnvPrefix is the prefix for environment variable overrides (NANOGEN_*).
	EnvPrefix = "NANOGEN"
)

// Default schema layout of the firmware project.
const (
	// DefaultSchemaDir is the directory holding the .proto and .options files.
	DefaultSchemaDir = "lib/NimBLEComm/proto"

	// DefaultSchemaFile is the schema file compiled in stage 1.
	DefaultSchemaFile = "gaggimate.proto"

	// DefaultOptionsFile is the nanopb options file read implicitly by the generator.
	DefaultOptionsFile = "gaggimate.options"

	// DefaultDescriptorFile is the binary descriptor written by stage 1.
	DefaultDescriptorFile = "gaggimate.pb"

	// DefaultOutputDir is where the generated header and source land.
	DefaultOutputDir = "lib/NimBLEComm/src"
)

// Generated artifact suffixes. Stage 2 must produce exactly these two files.
const (
	// HeaderSuffix is appended to the schema stem for the generated header.
	HeaderSuffix = ".pb.h"

	// SourceSuffix is appended to the schema stem for the generated implementation.
	SourceSuffix = ".pb.c"

	// DescriptorExt names the stage 1 descriptor after the schema stem.
	DescriptorExt = ".pb"

	// OptionsExt names the options file after the schema stem.
	OptionsExt = ".options"
)

// Timeouts for external invocations.
const (
	// DefaultCompilerTimeout bounds a single protoc invocation.
	DefaultCompilerTimeout = 2 * time.Minute

	// DefaultGeneratorTimeout bounds a single generator invocation.
	DefaultGeneratorTimeout = 5 * time.Minute

	// DefaultProbeTimeout bounds each liveness check run by the tool resolver.
	DefaultProbeTimeout = 15 * time.Second

	// SurveyTimeout bounds the whole `nanogen tools` survey.
	SurveyTimeout = 30 * time.Second
)

// Log file rotation settings for the CLI log.
const (
	// LogMaxSizeMB is the size in megabytes at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days rotated log files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true

	// HomeEnvVar overrides the location of the nanogen home directory.
	HomeEnvVar = "NANOGEN_HOME"
)
