package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Output formats for the --output flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for structured output to a terminal.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error message.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
	// Spinner starts a progress indicator; JSON output returns a no-op.
	Spinner(ctx context.Context, msg string) Spinner
}

// TTYOutput provides styled output for terminal displays.
type TTYOutput struct {
	w       io.Writer
	styles  *OutputStyles
	animate bool
}

// NewTTYOutput creates a new TTYOutput. animate enables the spinner; it should
// only be set when w is an interactive terminal.
func NewTTYOutput(w io.Writer, animate bool) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{
		w:       w,
		styles:  NewOutputStyles(),
		animate: animate,
	}
}

// Success prints a success message.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints an error message.
func (o *TTYOutput) Error(err error) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+err.Error()))
}

// Warning prints a warning message.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints an informational message.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// JSON outputs a value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// Spinner starts an animated spinner, or a no-op when animation is disabled.
func (o *TTYOutput) Spinner(ctx context.Context, msg string) Spinner {
	if !o.animate {
		return &NoopSpinner{}
	}
	return NewSpinnerAdapter(ctx, o.w, msg)
}

// Styles returns the styles used by this output.
func (o *TTYOutput) Styles() *OutputStyles {
	return o.styles
}

// Writer returns the underlying writer.
func (o *TTYOutput) Writer() io.Writer {
	return o.w
}

// JSONOutput provides plain JSON output without styling. Progress messages are
// dropped so stdout holds exactly one JSON document.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

// Success is a no-op for JSON output.
func (o *JSONOutput) Success(_ string) {}

// Error outputs the error as JSON.
func (o *JSONOutput) Error(err error) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = json.NewEncoder(o.w).Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}

// Warning is a no-op for JSON output.
func (o *JSONOutput) Warning(_ string) {}

// Info is a no-op for JSON output.
func (o *JSONOutput) Info(_ string) {}

// JSON outputs a value as formatted JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// Spinner returns a NoopSpinner.
func (o *JSONOutput) Spinner(_ context.Context, _ string) Spinner {
	return &NoopSpinner{}
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// NewOutput creates the appropriate output based on format.
func NewOutput(w io.Writer, format string, animate bool) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w, animate)
}

var (
	_ Output = (*TTYOutput)(nil)
	_ Output = (*JSONOutput)(nil)
)
