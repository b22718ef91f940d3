package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/google/uuid"
)

// NewLogger creates a new slog.Logger instance with the specified log level and format.
// Every record carries the session ID, and the command ID when the context has one.
func NewLogger(level, format string, out io.Writer) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	var logHandler slog.Handler
	if format == "json" {
		logHandler = slog.NewJSONHandler(out, loggerOpts)
	} else {
		logHandler = slog.NewTextHandler(out, loggerOpts)
	}
	return slog.New(logger.NewContextHandler(logHandler)).With("session_id", uuid.NewString())
}

// OpenLogOutput returns the destination configured for logs: the named file,
// opened for appending, or stderr when no file is set.
// The returned close function is always safe to call.
func OpenLogOutput(cfg config.LogConfig) (io.Writer, func() error, error) {
	if cfg.File == "" {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
