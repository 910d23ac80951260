// Package pipeline runs the two-stage code generation: the schema compiler writes a
// binary descriptor, then the resolved generator turns it into C sources.
//
// Stages run strictly in sequence, each as one blocking subprocess bounded by its own
// timeout. After each stage the expected files are checked on disk, because a zero
// exit status alone does not prove the stage did its job. Every run ends in exactly
// one immutable Result.
package pipeline

import (
	"strings"
	"time"
)

// StageName identifies a pipeline stage.
type StageName string

const (
	// StageCompile turns the schema into a binary descriptor.
	StageCompile StageName = "compile"

	// StageGenerate turns the descriptor into C header and source files.
	StageGenerate StageName = "generate"
)

// Stage is one external tool invocation and its captured diagnostics.
type Stage struct {
	Name     StageName     `json:"name"`
	Command  []string      `json:"command"`
	WorkDir  string        `json:"work_dir"`
	Expected []string      `json:"expected"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ns"`
}

// CommandLine returns the stage command as a copy-pasteable shell line.
func (s *Stage) CommandLine() string {
	return CommandLine(s.Command)
}

// CommandLine joins argv into a single line, quoting arguments that need it.
func CommandLine(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\$`*?[]{}()<>|&;#~") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
