// Package telemetry defines the line oriented display menus render into.
package telemetry

import (
	"log/slog"
	"strings"
)

// MaxLinesPerScreen is the number of lines a display shows at once.
const MaxLinesPerScreen = 8

// Sink accepts the lines of one frame followed by Update to flush them.
type Sink interface {
	AddLine(line string)
	Update()
}

// Buffer keeps the last flushed frame in memory for hosts that draw it themselves.
type Buffer struct {
	pending []string
	frame   []string
	flushes int
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) AddLine(line string) {
	b.pending = append(b.pending, line)
}

func (b *Buffer) Update() {
	b.frame = b.pending
	b.pending = nil
	b.flushes++
}

// Lines returns a copy of the last flushed frame.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.frame))
	copy(out, b.frame)

	return out
}

// Flushes counts calls to Update.
func (b *Buffer) Flushes() int {
	return b.flushes
}

func (b *Buffer) String() string {
	return strings.Join(b.frame, "\n")
}

// Logger writes each flushed frame to slog at debug level, useful when the terminal is not
// available.
type Logger struct {
	logger  *slog.Logger
	pending []string
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return &Logger{logger: logger}
}

func (l *Logger) AddLine(line string) {
	l.pending = append(l.pending, line)
}

func (l *Logger) Update() {
	l.logger.Debug("Telemetry frame", slog.Int("lines", len(l.pending)),
		slog.String("frame", strings.Join(l.pending, "\n")))
	l.pending = nil
}

// Multi fans every call out to all sinks.
type Multi []Sink

func (m Multi) AddLine(line string) {
	for _, sink := range m {
		sink.AddLine(line)
	}
}

func (m Multi) Update() {
	for _, sink := range m {
		sink.Update()
	}
}
