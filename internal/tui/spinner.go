package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/term"
)

// Spinner is a running progress indicator.
type Spinner interface {
	// Update changes the message.
	Update(msg string)
	// Stop stops the animation and clears the line.
	Stop()
}

// ElapsedTimeThreshold is the duration after which elapsed time is shown in the spinner.
// The generator can take a while on a cold Python start.
const ElapsedTimeThreshold = 10 * time.Second

// spinnerStyle is the bubbles frame set used for the animation.
//
//nolint:gochecknoglobals // Package-level constant for spinner animation
var spinnerStyle = spinner.MiniDot

// SpinnerFrames returns the animation frames.
func SpinnerFrames() []string {
	return spinnerStyle.Frames
}

// SpinnerInterval returns the delay between frames.
func SpinnerInterval() time.Duration {
	return spinnerStyle.FPS
}

// safeWriter wraps an io.Writer with mutex protection so the animation goroutine
// and stage output do not interleave mid-line.
type safeWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// Write implements io.Writer with mutex protection.
func (sw *safeWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// TerminalSpinner animates a single status line.
type TerminalSpinner struct {
	w       *safeWriter
	styles  *OutputStyles
	message string
	started time.Time
	done    chan struct{}
	exited  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewTerminalSpinner creates a spinner that writes to w.
func NewTerminalSpinner(w io.Writer) *TerminalSpinner {
	return &TerminalSpinner{
		w:      &safeWriter{w: w},
		styles: NewOutputStyles(),
	}
}

// Start begins the animation. Calling Start on a running spinner only updates the message.
func (s *TerminalSpinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	s.started = time.Now()
	if s.running {
		return
	}

	s.running = true
	s.done = make(chan struct{})
	s.exited = make(chan struct{})
	go s.animate(ctx, s.done, s.exited)
}

// UpdateMessage changes the message without restarting the animation.
func (s *TerminalSpinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop stops the animation and clears the line. Safe to call more than once.
func (s *TerminalSpinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done, exited := s.done, s.exited
	s.mu.Unlock()

	close(done)
	<-exited
	_, _ = fmt.Fprint(s.w, "\r\033[K")
}

func (s *TerminalSpinner) animate(ctx context.Context, done <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)

	ticker := time.NewTicker(SpinnerInterval())
	defer ticker.Stop()

	frames := SpinnerFrames()
	frame := 0
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			if elapsed := time.Since(s.started); elapsed > ElapsedTimeThreshold {
				msg = fmt.Sprintf("%s (%ds)", msg, int(elapsed.Seconds()))
			}
			s.mu.Unlock()

			msg = truncateToWidth(msg, getTerminalWidth()-4)
			_, _ = fmt.Fprintf(s.w, "\r\033[K%s %s", s.styles.Info.Render(frames[frame%len(frames)]), msg)
			frame++
		}
	}
}

// getTerminalWidth returns the width of stderr, or 80 when it is not a terminal.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd())) //nolint:gosec // G115: file descriptors fit in int
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// truncateToWidth truncates s to maxWidth runes, appending "..." when cut.
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// SpinnerAdapter ties a TerminalSpinner to its own cancelable context.
type SpinnerAdapter struct {
	spinner *TerminalSpinner
	cancel  context.CancelFunc
}

// NewSpinnerAdapter starts a spinner on w.
func NewSpinnerAdapter(ctx context.Context, w io.Writer, msg string) *SpinnerAdapter {
	ctx, cancel := context.WithCancel(ctx)
	s := NewTerminalSpinner(w)
	s.Start(ctx, msg)
	return &SpinnerAdapter{spinner: s, cancel: cancel}
}

// Update changes the spinner message.
func (a *SpinnerAdapter) Update(msg string) {
	a.spinner.UpdateMessage(msg)
}

// Stop terminates the spinner.
func (a *SpinnerAdapter) Stop() {
	a.spinner.Stop()
	a.cancel()
}

// NoopSpinner is used for JSON and non-interactive output.
type NoopSpinner struct{}

// Update is a no-op.
func (*NoopSpinner) Update(_ string) {}

// Stop is a no-op.
func (*NoopSpinner) Stop() {}
