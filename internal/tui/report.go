package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrz1836/nanogen/internal/pipeline"
	"github.com/mrz1836/nanogen/internal/resolver"
)

// RenderResult writes the human-readable outcome of a run.
//
// Success lists every generated file. Failure prints the kind, the stage, the exact
// command, the tool's captured output and a remediation hint, in that order.
func RenderResult(w io.Writer, styles *OutputStyles, r *pipeline.Result) {
	if r.Success {
		for _, path := range r.Outputs {
			_, _ = fmt.Fprintln(w, styles.Success.Render("✓ Generated: "+path))
		}
		_, _ = fmt.Fprintln(w, styles.Dim.Render(fmt.Sprintf("  done in %s (run %s)", formatDuration(r.Duration), shortID(r.RunID))))
		return
	}

	title := "Code generation failed"
	if r.Stage != "" {
		title = StageTitle(string(r.Stage)) + " stage failed"
	}
	_, _ = fmt.Fprintln(w, styles.Error.Render("✗ "+title+": "+r.Message))

	field := func(label, value string) {
		if value == "" {
			return
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render(label+":"), value)
	}
	field("Kind", r.Kind.String())
	field("Stage", string(r.Stage))
	field("Command", r.Command)
	if r.Kind == pipeline.FailureExternalTool && r.ExitCode != 0 {
		field("Exit", fmt.Sprintf("%d", r.ExitCode))
	}

	renderCaptured(w, styles, "stderr", r.Stderr)
	if strings.TrimSpace(r.Stderr) == "" {
		renderCaptured(w, styles, "stdout", r.Stdout)
	}

	if r.Hint != "" {
		_, _ = fmt.Fprintln(w, styles.Dim.Render("  ▸ Try: "+r.Hint))
	}
}

// renderCaptured prints tool output verbatim inside a framed block.
func renderCaptured(w io.Writer, styles *OutputStyles, label, output string) {
	output = strings.TrimRight(output, "\r\n")
	if strings.TrimSpace(output) == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "  %s\n", styles.Label.Render(label+":"))
	for _, line := range strings.Split(styles.Block.Render(output), "\n") {
		_, _ = fmt.Fprintln(w, "  "+line)
	}
}

// RenderSurvey writes the tool survey: the compiler first, then every generator
// candidate in priority order with the one `generate` would use marked.
func RenderSurvey(w io.Writer, styles *OutputStyles, report *resolver.SurveyReport) {
	_, _ = fmt.Fprintln(w, StyleBold.Render("Compiler"))
	renderCandidate(w, styles, report.Compiler, false)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, StyleBold.Render("Generator")+styles.Dim.Render(" (first found is used)"))
	for _, c := range report.Generators {
		renderCandidate(w, styles, c, true)
	}
	_, _ = fmt.Fprintln(w)

	if report.Ready() {
		_, _ = fmt.Fprintln(w, styles.Success.Render("✓ Ready to generate"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.Error.Render("✗ Not ready: a required tool is missing"))
}

func renderCandidate(w io.Writer, styles *OutputStyles, c resolver.Candidate, numbered bool) {
	prefix := "  "
	if numbered {
		prefix = fmt.Sprintf("  %d. ", c.Priority)
	}
	name := padRight(c.Kind, 13)
	if !numbered {
		name = padRight(c.Name, 13)
	}

	if c.Status != resolver.CandidateFound {
		_, _ = fmt.Fprintln(w, prefix+styles.Dim.Render("✗ "+name+" not found"))
		return
	}

	line := "✓ " + name + " " + padRight(versionOrDash(c.Version), 9) + " " + strings.Join(c.Command, " ")
	if numbered && c.Selected {
		_, _ = fmt.Fprintln(w, prefix+styles.Success.Render(line)+styles.Info.Render("  ← selected"))
		return
	}
	_, _ = fmt.Fprintln(w, prefix+styles.Success.Render(line))
}

func versionOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// formatDuration formats d for display (e.g. "850ms", "1.2s").
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
