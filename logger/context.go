package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

// Logger context keys
const (
	LoggerKey ContextKey = "logger"
)

// FromContext retrieves the logger from the context
// If no logger is found, it returns the default logger
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// WithTickID tags the context logger with a fresh time-ordered tick id
// so that all lines of a single poll can be grepped together.
func WithTickID(ctx context.Context) context.Context {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	logger := FromContext(ctx)
	return WithLogger(ctx, logger.With("tick_id", id.String()))
}
