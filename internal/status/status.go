// Package status updates the terminal title to reflect what Claude is
// doing. There is no background timer here: the spinner only moves when a
// caller asks it to, so the package has no hidden lifecycle.
package status

import (
	"fmt"
	"io"
	"os"
)

// States shown in the terminal title.
const (
	StateWorking   = "working"
	StateAttention = "attention"
	StateDone      = "done"
)

var stateGlyphs = map[string]string{
	StateWorking:   "⚙",
	StateAttention: "●",
	StateDone:      "✓",
}

// Reporter writes OSC title sequences to the controlling terminal. Hook
// handlers must keep stdout clean for the host, so the tty is opened
// directly and silently skipped when unavailable.
type Reporter struct {
	out io.Writer
}

// NewReporter opens /dev/tty for title updates. On failure the reporter is
// a no-op.
func NewReporter() *Reporter {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return &Reporter{}
	}
	return &Reporter{out: tty}
}

// NewReporterTo writes title sequences to an explicit writer.
func NewReporterTo(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// Set updates the terminal title to "<glyph> <label>...". Unknown states
// fall back to a bare label.
func (r *Reporter) Set(state, label string) {
	if r.out == nil {
		return
	}
	title := label
	if glyph, ok := stateGlyphs[state]; ok {
		title = glyph + " " + label
	}
	if state == StateWorking {
		title += "..."
	}
	fmt.Fprintf(r.out, "\033]0;%s\007", title)
}

// Spinner is a cooperative frame cycler. Frame advances and returns the
// next glyph; the caller owns whatever timer drives it.
type Spinner struct {
	frames []string
	index  int
}

// NewSpinner returns a spinner with the stock braille frames.
func NewSpinner() *Spinner {
	return &Spinner{frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}}
}

// Frame returns the current glyph and advances to the next one.
func (s *Spinner) Frame() string {
	frame := s.frames[s.index]
	s.index = (s.index + 1) % len(s.frames)
	return frame
}
