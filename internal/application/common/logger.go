package common

import "context"

// GameLogger receives operational log lines from the application layer.
// It is separate from the project log, which is part of the game state.
type GameLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger GameLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) GameLogger {
	if logger, ok := ctx.Value(loggerKey).(GameLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is the fallback when no logger is in the context
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}
