package resolver

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mrz1836/nanogen/internal/constants"
)

// ToolResolver resolves the generator for one pipeline run.
type ToolResolver interface {
	// Resolve runs discovery and returns exactly one Resolution.
	Resolve(ctx context.Context) Resolution
}

// Resolver evaluates an ordered probe list against a System.
// It holds no state between calls: every Resolve re-runs discovery.
type Resolver struct {
	probes []Probe
	sys    System
}

// NewResolver creates a Resolver for env using the real filesystem and os/exec.
func NewResolver(env Environment, probes []Probe, probeTimeout time.Duration) *Resolver {
	return NewResolverWith(env, probes, probeTimeout, afero.NewOsFs(), &DefaultCommandExecutor{})
}

// NewResolverWith creates a Resolver with a custom filesystem and executor (for testing).
func NewResolverWith(env Environment, probes []Probe, probeTimeout time.Duration, fs afero.Fs, executor CommandExecutor) *Resolver {
	if probeTimeout <= 0 {
		probeTimeout = constants.DefaultProbeTimeout
	}
	// Copy so later changes to the caller's slice cannot reorder discovery.
	ordered := make([]Probe, len(probes))
	copy(ordered, probes)

	return &Resolver{
		probes: ordered,
		sys: System{
			Env:          env,
			Fs:           fs,
			Executor:     executor,
			ProbeTimeout: probeTimeout,
		},
	}
}

// Probes returns a copy of the probe list in priority order.
func (r *Resolver) Probes() []Probe {
	out := make([]Probe, len(r.probes))
	copy(out, r.probes)
	return out
}

// Resolve tries each probe in order and returns the first success.
// Individual probe failures are expected and only debug-logged.
func (r *Resolver) Resolve(ctx context.Context) Resolution {
	log := zerolog.Ctx(ctx)

	for i, probe := range r.probes {
		tool, ok := probe.Probe(ctx, r.sys)
		if !ok {
			log.Debug().
				Str("locator", probe.Kind().String()).
				Int("priority", i+1).
				Msg("generator probe did not match")
			continue
		}

		log.Info().
			Str("locator", tool.Kind.String()).
			Str("command", tool.String()).
			Str("version", tool.Version).
			Msg("code generator resolved")
		return Resolved(tool)
	}

	log.Warn().Int("probes", len(r.probes)).Msg("no code generator found")
	return Unresolved(constants.InstallHintGenerator)
}

var _ ToolResolver = (*Resolver)(nil)
