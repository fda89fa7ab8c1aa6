package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards command output to slog.
type Writer struct {
	logger *slog.Logger
	level  Level
}

// NewWriter constructs a Writer that logs each line at info level.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger, level: LevelInfo}
}

// NewWriterLevel constructs a Writer that logs each line at the given level.
func NewWriterLevel(logger *slog.Logger, level Level) *Writer {
	return &Writer{logger: logger, level: level}
}

// Write logs the given bytes as a single line at the configured level.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		line := strings.TrimRight(string(p), "\n")
		if line != "" {
			w.logger.Log(context.Background(), slog.Level(w.level), "command output", "line", line)
		}
	}
	return len(p), nil
}
