package argio

import (
	"fmt"
	"sync"
)

// Level represents the severity of a diagnostic message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the tag used when rendering the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Sink collects diagnostic messages emitted while declaring or parsing
// arguments. Messages at or above the render level are written to the
// Manager's error writer as they arrive; all messages are retained so tests
// and callers can inspect them after a parse.
type Sink struct {
	mu       sync.Mutex
	manager  *Manager
	minLevel Level
	messages []Message
}

// Message is one recorded diagnostic.
type Message struct {
	Level Level
	Text  string
}

func newSink(m *Manager) *Sink {
	return &Sink{manager: m, minLevel: LevelWarning}
}

// MinLevel sets the lowest level that is rendered to the error writer.
// Messages below the level are still recorded.
func (s *Sink) MinLevel(level Level) *Sink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minLevel = level
	return s
}

// Warnf records a warning.
func (s *Sink) Warnf(format string, args ...any) {
	s.emit(LevelWarning, fmt.Sprintf(format, args...))
}

// Infof records an informational message.
func (s *Sink) Infof(format string, args ...any) {
	s.emit(LevelInfo, fmt.Sprintf(format, args...))
}

// Messages returns a copy of every recorded diagnostic.
func (s *Sink) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset discards recorded diagnostics.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = s.messages[:0]
}

func (s *Sink) emit(level Level, text string) {
	s.mu.Lock()
	s.messages = append(s.messages, Message{Level: level, Text: text})
	render := level >= s.minLevel
	s.mu.Unlock()

	if render {
		fmt.Fprintf(s.manager.Err(), "[%s] %s\n", level, text)
	}
}
