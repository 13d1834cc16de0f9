// Package indicator shows a busy status while a request is in flight.
package indicator

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

const (
	// DefaultMessage follows the spinner glyph.
	DefaultMessage = "\t\tOpenAI is thinking..."

	// ClearScreen resets the terminal.
	ClearScreen = "\x1bc"
)

// Indicator has start/stop semantics. Stop must be safe to call
// when the indicator is not running.
type Indicator interface {
	Start()
	Stop()
}

// Nop does nothing. Used for non-interactive runs and tests.
type Nop struct{}

func (Nop) Start() {}
func (Nop) Stop()  {}

// Spinner animates a glyph on its own line.
type Spinner struct {
	mu      sync.Mutex
	s       *spinner.Spinner
	running bool
}

// NewSpinner builds a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = message
	return &Spinner{s: s}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.s.Start()
	s.running = true
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.s.Stop()
	s.running = false
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// For picks the spinner for terminals and Nop otherwise.
func For(w io.Writer, disabled bool) Indicator {
	if disabled || !IsTerminal(w) {
		return Nop{}
	}
	return NewSpinner(w, DefaultMessage)
}

// Clear writes the clear-screen sequence followed by a newline.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, ClearScreen+"\n")
	return err
}
