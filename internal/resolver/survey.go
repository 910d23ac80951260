package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/nanogen/internal/constants"
)

// CandidateStatus is the outcome of one probe in a survey.
type CandidateStatus string

const (
	// CandidateFound means the probe matched and its liveness check passed.
	CandidateFound CandidateStatus = "found"
	// CandidateMissing means the probe did not match.
	CandidateMissing CandidateStatus = "missing"
)

// Candidate is one line of a survey report.
type Candidate struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Priority int             `json:"priority"`
	Status   CandidateStatus `json:"status"`
	Command  []string        `json:"command,omitempty"`
	Version  string          `json:"version,omitempty"`
	Selected bool            `json:"selected"`
}

// SurveyReport describes every discovery option, for diagnostics.
type SurveyReport struct {
	// Compiler is the stage 1 compiler check.
	Compiler Candidate `json:"compiler"`
	// Generators lists every probe in priority order.
	Generators []Candidate `json:"generators"`
}

// Ready reports whether both stages could run.
func (r *SurveyReport) Ready() bool {
	if r.Compiler.Status != CandidateFound {
		return false
	}
	for _, c := range r.Generators {
		if c.Selected {
			return true
		}
	}
	return false
}

// Survey evaluates every probe, unlike Resolve which stops at the first match,
// plus the compiler. Probes are independent and run concurrently; results are
// reported in priority order with the candidate Resolve would pick marked Selected.
func (r *Resolver) Survey(ctx context.Context, compiler string) (*SurveyReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surveyCtx, cancel := context.WithTimeout(ctx, constants.SurveyTimeout)
	defer cancel()

	report := &SurveyReport{
		Generators: make([]Candidate, len(r.probes)),
	}

	g, gCtx := errgroup.WithContext(surveyCtx)

	g.Go(func() error {
		report.Compiler = r.surveyCompiler(gCtx, compiler)
		return nil
	})

	for i, probe := range r.probes {
		g.Go(func() error {
			c := Candidate{
				Name:     constants.ToolNanopbGenerator,
				Kind:     probe.Kind().String(),
				Priority: i + 1,
				Status:   CandidateMissing,
			}
			if tool, ok := probe.Probe(gCtx, r.sys); ok {
				c.Status = CandidateFound
				c.Command = tool.Command
				c.Version = tool.Version
			}
			// Each goroutine owns its own slot.
			report.Generators[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to survey tools: %w", err)
	}

	for i := range report.Generators {
		if report.Generators[i].Status == CandidateFound {
			report.Generators[i].Selected = true
			break
		}
	}

	return report, nil
}

// surveyCompiler checks that the compiler is on PATH and answers --version.
func (r *Resolver) surveyCompiler(ctx context.Context, compiler string) Candidate {
	c := Candidate{Name: compiler, Kind: "compiler", Priority: 0, Status: CandidateMissing}

	path, found := r.sys.Env.LookPath(r.sys.Fs, compiler)
	if !found {
		return c
	}

	argv := []string{path}
	output, ok := r.sys.alive(ctx, argv)
	if !ok {
		return c
	}

	c.Status = CandidateFound
	c.Selected = true
	c.Command = argv
	c.Version = parseVersion(output)
	return c
}
