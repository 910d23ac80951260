package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/mrz1836/nanogen/internal/pipeline"
)

// stageCount is the number of stages in a full run.
const stageCount = 2

// ProgressObserver prints pipeline progress: a stage header, the exact command
// about to run, a spinner while it runs, and a one-line outcome.
type ProgressObserver struct {
	ctx      context.Context //nolint:containedctx // spinner lifetime follows the run
	out      *TTYOutput
	progress *StageProgress

	mu      sync.Mutex
	current int
	spinner Spinner
}

// NewProgressObserver creates an observer writing to out.
func NewProgressObserver(ctx context.Context, out *TTYOutput) *ProgressObserver {
	return &ProgressObserver{
		ctx:      ctx,
		out:      out,
		progress: NewStageProgress(stageCount, DefaultProgressWidth),
	}
}

// StageStarted implements pipeline.Observer.
func (o *ProgressObserver) StageStarted(stage pipeline.Stage) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.current++
	w := o.out.Writer()
	_, _ = fmt.Fprintln(w, o.progress.Render(o.current, string(stage.Name)))
	_, _ = fmt.Fprintln(w, o.out.Styles().Dim.Render("  $ "+stage.CommandLine()))
	o.spinner = o.out.Spinner(o.ctx, stageVerb(stage.Name)+"...")
}

// StageFinished implements pipeline.Observer.
func (o *ProgressObserver) StageFinished(stage pipeline.Stage, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.spinner != nil {
		o.spinner.Stop()
		o.spinner = nil
	}

	label := fmt.Sprintf("%s (%s)", StageTitle(string(stage.Name)), formatDuration(stage.Duration))
	if err != nil {
		_, _ = fmt.Fprintln(o.out.Writer(), o.out.Styles().Error.Render("✗ "+label))
		return
	}
	_, _ = fmt.Fprintln(o.out.Writer(), o.out.Styles().Success.Render("✓ "+label))
}

// Warning implements pipeline.Observer.
func (o *ProgressObserver) Warning(message string) {
	o.out.Warning(message)
}

func stageVerb(name pipeline.StageName) string {
	switch name {
	case pipeline.StageCompile:
		return "Compiling schema"
	case pipeline.StageGenerate:
		return "Generating sources"
	default:
		return StageTitle(string(name))
	}
}

var _ pipeline.Observer = (*ProgressObserver)(nil)
