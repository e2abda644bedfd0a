// Package argio manages the output streams and diagnostics of a parser.
// Help text, error descriptions and conversion warnings are written through
// a Manager so that callers can redirect or capture everything a parser
// emits without touching process-wide state.
package argio

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Manager owns the writers a parser emits to. The zero value is not usable;
// create one with New.
type Manager struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer

	warnings *Sink
}

// New creates a Manager writing to stdout/stderr.
func New() *Manager {
	m := &Manager{
		out: os.Stdout,
		err: os.Stderr,
	}
	m.warnings = newSink(m)
	return m
}

// SetOutput redirects normal output (help text, error descriptions).
func (m *Manager) SetOutput(w io.Writer) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.out = w
	return m
}

// SetError redirects diagnostic output.
func (m *Manager) SetError(w io.Writer) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = w
	return m
}

// Out returns the writer for normal output.
func (m *Manager) Out() io.Writer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out
}

// Err returns the writer for diagnostics.
func (m *Manager) Err() io.Writer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Printf writes formatted text to the output writer.
func (m *Manager) Printf(format string, args ...any) {
	fmt.Fprintf(m.Out(), format, args...)
}

// Warnings returns the diagnostic sink for non-fatal parser warnings.
func (m *Manager) Warnings() *Sink {
	return m.warnings
}
