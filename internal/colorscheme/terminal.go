package colorscheme

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// TerminalDetector asks the terminal for its background color.
//
// The query is answered once and remembered: the terminal background does not
// change during a session, and querying while the TUI owns stdin would race
// with keyboard input.
type TerminalDetector struct {
	once sync.Once
	dark bool
	out  *os.File
}

// NewTerminalDetector creates a detector for stdout.
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{out: os.Stdout}
}

func (t *TerminalDetector) Name() string { return "terminal" }
func (t *TerminalDetector) Priority() int { return 10 }

// Available reports whether stdout is a terminal.
func (t *TerminalDetector) Available() bool {
	fd := t.out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Detect returns the terminal's background darkness.
func (t *TerminalDetector) Detect() (bool, bool) {
	t.once.Do(func() {
		t.dark = termenv.NewOutput(t.out).HasDarkBackground()
	})
	return t.dark, true
}
