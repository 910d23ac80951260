package cli

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/mrz1836/nanogen/internal/config"
	"github.com/mrz1836/nanogen/internal/errors"
	"github.com/mrz1836/nanogen/internal/resolver"
	"github.com/mrz1836/nanogen/internal/tui"
)

// loadConfig loads the effective configuration with CLI overrides applied and
// makes the project root absolute. Configuration problems are invalid input.
func loadConfig(ctx context.Context, flags *GlobalFlags, overrides *config.Config) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(ctx, flags.ConfigPath, overrides)
	if err != nil {
		return nil, errors.NewExitCode2Error(err)
	}

	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, errors.Wrap(err, "resolve project root")
	}
	cfg.ProjectRoot = root

	return cfg, nil
}

// newResolver builds the generator resolver described by cfg against the live environment.
func newResolver(cfg *config.Config) *resolver.Resolver {
	env := resolver.EnvironmentFromOS(cfg.ProjectRoot, cfg.Generator.PackagesRoot)
	settings := resolver.Settings{
		Module:         cfg.Generator.Module,
		Executable:     cfg.Generator.Executable,
		Interpreter:    cfg.Generator.Interpreter,
		VenvPython:     cfg.Generator.VenvPython,
		PackagePattern: cfg.Generator.PackagePattern,
		Script:         cfg.Generator.Script,
	}
	return resolver.NewResolver(env, resolver.DefaultProbes(settings), cfg.Generator.ProbeTimeout)
}

// isInteractive reports whether stdout is a terminal that can show a spinner.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && tui.HasColorSupport() //nolint:gosec // G115: file descriptors fit in int
}
