package allocgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with allocator-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBlockSize adds a block size field to the logger.
func (l *Logger) WithBlockSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("block_size", size),
	}
}

// WithThreshold adds a routing threshold field to the logger.
func (l *Logger) WithThreshold(threshold int) *Logger {
	return &Logger{
		Logger: l.Logger.With("threshold", threshold),
	}
}

// LogPoolCreate logs the lazy creation of a size-class pool.
func (l *Logger) LogPoolCreate(blockSize int) {
	l.Debug("pool created",
		"block_size", blockSize,
	)
}

// LogRegistryClose logs a registry teardown.
func (l *Logger) LogRegistryClose(pools int, err error) {
	if err != nil {
		l.Error("registry close failed",
			"pools", pools,
			"error", err,
		)
	} else {
		l.Debug("registry closed",
			"pools", pools,
		)
	}
}
