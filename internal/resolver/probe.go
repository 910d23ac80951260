package resolver

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mrz1836/nanogen/internal/constants"
)

// System is everything a probe may touch: the environment snapshot, a filesystem,
// and a command executor for liveness checks.
type System struct {
	Env          Environment
	Fs           afero.Fs
	Executor     CommandExecutor
	ProbeTimeout time.Duration
}

// alive runs argv with the version flag appended and reports whether it exited zero.
// It returns the command output so callers can extract a version.
func (s System) alive(ctx context.Context, argv []string) (string, bool) {
	timeout := s.ProbeTimeout
	if timeout <= 0 {
		timeout = constants.DefaultProbeTimeout
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := make([]string, 0, len(argv))
	args = append(args, argv[1:]...)
	args = append(args, constants.VersionFlag)

	output, err := s.Executor.Run(probeCtx, s.Env.ProjectRoot, argv[0], args...)
	if err != nil {
		zerolog.Ctx(ctx).Debug().
			Strs("command", argv).
			Err(err).
			Msg("liveness check failed")
		return output, false
	}
	return output, true
}

// Probe is one discovery strategy.
type Probe interface {
	// Kind identifies the strategy.
	Kind() LocatorKind

	// Probe returns the tool this strategy would use, or false when the
	// strategy does not apply or its liveness check fails.
	Probe(ctx context.Context, sys System) (*Tool, bool)
}

// VenvProbe runs the generator module with a project-local virtualenv interpreter.
type VenvProbe struct {
	// Interpreter is the interpreter path relative to the project root.
	Interpreter string
	// Module is the generator module path.
	Module string
}

// Kind implements Probe.
func (p VenvProbe) Kind() LocatorKind { return KindVenv }

// Probe implements Probe.
func (p VenvProbe) Probe(ctx context.Context, sys System) (*Tool, bool) {
	python := p.Interpreter
	if !filepath.IsAbs(python) {
		python = filepath.Join(sys.Env.ProjectRoot, python)
	}
	if !isRegularFile(sys.Fs, python) {
		return nil, false
	}

	argv := []string{python, "-m", p.Module}
	output, ok := sys.alive(ctx, argv)
	if !ok {
		return nil, false
	}
	return &Tool{Kind: KindVenv, Command: argv, Version: parseVersion(output)}, true
}

// ExecutableProbe runs a standalone generator executable found on PATH.
type ExecutableProbe struct {
	// Name is the executable name.
	Name string
}

// Kind implements Probe.
func (p ExecutableProbe) Kind() LocatorKind { return KindExecutable }

// Probe implements Probe.
func (p ExecutableProbe) Probe(ctx context.Context, sys System) (*Tool, bool) {
	path, found := sys.Env.LookPath(sys.Fs, p.Name)
	if !found {
		return nil, false
	}

	argv := []string{path}
	output, ok := sys.alive(ctx, argv)
	if !ok {
		return nil, false
	}
	return &Tool{Kind: KindExecutable, Command: argv, Version: parseVersion(output)}, true
}

// ModuleProbe runs the generator module with the generic interpreter on PATH.
type ModuleProbe struct {
	// Interpreter is the interpreter name looked up on PATH.
	Interpreter string
	// Module is the generator module path.
	Module string
}

// Kind implements Probe.
func (p ModuleProbe) Kind() LocatorKind { return KindModule }

// Probe implements Probe.
func (p ModuleProbe) Probe(ctx context.Context, sys System) (*Tool, bool) {
	python, found := sys.Env.LookPath(sys.Fs, p.Interpreter)
	if !found {
		return nil, false
	}

	argv := []string{python, "-m", p.Module}
	output, ok := sys.alive(ctx, argv)
	if !ok {
		return nil, false
	}
	return &Tool{Kind: KindModule, Command: argv, Version: parseVersion(output)}, true
}

// PackageGlobProbe searches the package manager cache for a generator script.
// A match is accepted on existence alone: the script is a concrete file, not a
// PATH-resolved name, so no liveness check is run.
type PackageGlobProbe struct {
	// Pattern is matched case-insensitively as a substring of directory names.
	Pattern string
	// Script is the generator script path inside a matching directory.
	Script string
	// Interpreter runs the script. It is looked up on PATH, falling back to the bare name.
	Interpreter string
}

// Kind implements Probe.
func (p PackageGlobProbe) Kind() LocatorKind { return KindPackageGlob }

// Probe implements Probe.
func (p PackageGlobProbe) Probe(ctx context.Context, sys System) (*Tool, bool) {
	root := sys.Env.PackagesRoot
	if root == "" {
		return nil, false
	}

	// ReadDir returns entries sorted by name, which keeps the first match stable.
	entries, err := afero.ReadDir(sys.Fs, root)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("packages_root", root).Err(err).Msg("package cache not readable")
		return nil, false
	}

	pattern := strings.ToLower(p.Pattern)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.Contains(strings.ToLower(entry.Name()), pattern) {
			continue
		}
		script := filepath.Join(root, entry.Name(), filepath.FromSlash(p.Script))
		if !isRegularFile(sys.Fs, script) {
			continue
		}

		python, found := sys.Env.LookPath(sys.Fs, p.Interpreter)
		if !found {
			python = p.Interpreter
		}
		return &Tool{Kind: KindPackageGlob, Command: []string{python, script}}, true
	}
	return nil, false
}

// Settings configures the default probe list.
type Settings struct {
	Module         string
	Executable     string
	Interpreter    string
	VenvPython     string
	PackagePattern string
	Script         string
}

// DefaultSettings returns the stock nanopb discovery settings.
func DefaultSettings() Settings {
	return Settings{
		Module:         constants.NanopbGeneratorModule,
		Executable:     constants.ToolNanopbGenerator,
		Interpreter:    constants.ToolPython,
		VenvPython:     constants.VenvPython,
		PackagePattern: constants.NanopbPackagePattern,
		Script:         constants.NanopbGeneratorScript,
	}
}

// DefaultProbes returns the discovery strategies in priority order:
// project virtualenv, PATH executable, interpreter module, package cache.
func DefaultProbes(s Settings) []Probe {
	return []Probe{
		VenvProbe{Interpreter: s.VenvPython, Module: s.Module},
		ExecutableProbe{Name: s.Executable},
		ModuleProbe{Interpreter: s.Interpreter, Module: s.Module},
		PackageGlobProbe{Pattern: s.PackagePattern, Script: s.Script, Interpreter: s.Interpreter},
	}
}
