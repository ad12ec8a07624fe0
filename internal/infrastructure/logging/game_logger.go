package logging

import (
	"context"
	"log/slog"
	"sort"
)

// SlogGameLogger adapts a slog logger to the application's GameLogger
type SlogGameLogger struct {
	logger *slog.Logger
}

// NewSlogGameLogger wraps logger. A nil logger uses slog.Default().
func NewSlogGameLogger(logger *slog.Logger) *SlogGameLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogGameLogger{logger: logger}
}

// Log writes message at level with metadata as attributes in key order
func (l *SlogGameLogger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}

	l.logger.LogAttrs(context.Background(), ParseLevel(level), message, attrs...)
}
