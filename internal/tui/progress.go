package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultProgressWidth is the width of the stage progress bar.
const DefaultProgressWidth = 12

// StageProgress renders a static "N/M Stage" progress line.
type StageProgress struct {
	bar   progress.Model
	total int
	title cases.Caser
}

// NewStageProgress creates a progress line for total stages.
// The gradient matches ColorPrimary; NO_COLOR terminals get a solid fill.
func NewStageProgress(total, width int) *StageProgress {
	if width <= 0 {
		width = DefaultProgressWidth
	}

	var bar progress.Model
	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithoutPercentage(),
			progress.WithScaledGradient("#0087AF", "#00D7FF"),
		)
	} else {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithoutPercentage(),
			progress.WithSolidFill("#808080"),
		)
	}

	return &StageProgress{bar: bar, total: total, title: cases.Title(language.English)}
}

// Render returns the bar for stage current (1-based) named name.
func (p *StageProgress) Render(current int, name string) string {
	percent := 0.0
	if p.total > 0 {
		percent = float64(current) / float64(p.total)
	}
	if percent > 1 {
		percent = 1
	}
	return fmt.Sprintf("%s %d/%d %s", p.bar.ViewAs(percent), current, p.total, p.title.String(name))
}

// StageTitle returns a stage name in title case, e.g. "compile" -> "Compile".
func StageTitle(name string) string {
	return cases.Title(language.English).String(name)
}
