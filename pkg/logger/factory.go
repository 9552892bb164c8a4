package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON-formatted logger on stdout with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWriter(os.Stdout, slog.LevelInfo, extractors...)
}

// NewWriter creates a JSON-formatted logger writing to w at the given level.
func NewWriter(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}
