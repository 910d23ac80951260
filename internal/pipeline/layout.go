package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/mrz1836/nanogen/internal/config"
	"github.com/mrz1836/nanogen/internal/constants"
)

// Layout is the resolved set of paths one run reads and writes.
type Layout struct {
	// SchemaDir holds the schema, options and descriptor; both stages run here.
	SchemaDir string `json:"schema_dir"`
	// SchemaFile is the schema file name inside SchemaDir.
	SchemaFile string `json:"schema_file"`
	// OptionsFile is the options file name inside SchemaDir.
	OptionsFile string `json:"options_file"`
	// DescriptorFile is the descriptor file name inside SchemaDir.
	DescriptorFile string `json:"descriptor_file"`
	// OutputDir receives the generated sources.
	OutputDir string `json:"output_dir"`
}

// LayoutFromConfig resolves the configured schema and output locations against the project root.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		SchemaDir:      cfg.ProjectPath(cfg.Schema.Dir),
		SchemaFile:     cfg.Schema.File,
		OptionsFile:    cfg.Schema.Options,
		DescriptorFile: cfg.Schema.Descriptor,
		OutputDir:      cfg.ProjectPath(cfg.Output.Dir),
	}
}

// SchemaPath returns the full schema path.
func (l Layout) SchemaPath() string {
	return filepath.Join(l.SchemaDir, l.SchemaFile)
}

// OptionsPath returns the full options file path.
func (l Layout) OptionsPath() string {
	return filepath.Join(l.SchemaDir, l.OptionsFile)
}

// DescriptorPath returns the full descriptor path.
func (l Layout) DescriptorPath() string {
	return filepath.Join(l.SchemaDir, l.DescriptorFile)
}

// LockPath returns the run lock file next to the descriptor.
func (l Layout) LockPath() string {
	return l.DescriptorPath() + constants.LockFileSuffix
}

// Stem is the schema file name without its extension. The generator names its
// output after the schema, not after the descriptor.
func (l Layout) Stem() string {
	return strings.TrimSuffix(l.SchemaFile, filepath.Ext(l.SchemaFile))
}

// HeaderPath returns the generated header path.
func (l Layout) HeaderPath() string {
	return filepath.Join(l.OutputDir, l.Stem()+constants.HeaderSuffix)
}

// SourcePath returns the generated source path.
func (l Layout) SourcePath() string {
	return filepath.Join(l.OutputDir, l.Stem()+constants.SourceSuffix)
}

// Artifacts returns the files stage 2 must produce, header first.
func (l Layout) Artifacts() []string {
	return []string{l.HeaderPath(), l.SourcePath()}
}

// CompileCommand returns the stage 1 invocation for compiler.
func (l Layout) CompileCommand(compiler string) []string {
	return []string{
		compiler,
		constants.FlagProtoPath, l.SchemaDir,
		constants.FlagDescriptorSetOut, l.DescriptorPath(),
		l.SchemaFile,
	}
}

// GenerateArgs returns the arguments appended to the resolved generator command.
func (l Layout) GenerateArgs() []string {
	return []string{constants.FlagOutputDir, l.OutputDir, l.DescriptorPath()}
}
