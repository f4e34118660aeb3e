// Package logging provides structured logging utilities using the standard
// library's log/slog package.
package logging

import (
	"context"
	"log/slog"
	"os"

	"gridiron-feed/internal/handler/http/requestid"
)

// NewLogger creates a new structured logger with JSON output.
// The log level is controlled via the LOG_LEVEL environment variable
// (debug, info, warn, error); the default is info.
func NewLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// WithRequestID returns a logger that includes the request ID from the context.
// This enables request tracing across log entries.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
