package compiler

import (
	"fmt"
	"io"
	"os"

	"github.com/KromDaniel/thompson/internal/nfa"
)

// Logger prints the analysis and generation decisions taken for a pattern.
// A disabled Logger discards everything.
type Logger struct {
	enabled bool
	out     io.Writer
}

// NewLogger creates a logger writing to stderr.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.enabled {
		fmt.Fprintf(l.out, "[thompson] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l.enabled {
		fmt.Fprintf(l.out, "\n[thompson] === %s ===\n", name)
	}
}

// Table dumps the transition table of a if verbose mode is enabled.
func (l *Logger) Table(a *nfa.Automaton) {
	if !l.enabled {
		return
	}
	if err := nfa.WriteTable(l.out, a); err != nil {
		l.Log("failed to write transition table: %v", err)
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
