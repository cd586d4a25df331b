package henkan

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with henkan-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDictionary adds a dictionary field to the logger.
func (l *Logger) WithDictionary(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dictionary", name),
	}
}

// LogOpen logs engine construction.
func (l *Logger) LogOpen(ctx context.Context, dictionaries int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "engine opened",
		"dictionaries", dictionaries,
		"duration", duration,
	)
}

// LogDictionaryLoad logs the load of one dictionary.
func (l *Logger) LogDictionaryLoad(ctx context.Context, name string, size int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dictionary load failed",
			"dictionary", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dictionary loaded",
		"dictionary", name,
		"bytes", size,
		"duration", duration,
	)
}

// LogDictionarySkipped logs a mandatory auxiliary dictionary that could not
// be loaded and is left absent.
func (l *Logger) LogDictionarySkipped(ctx context.Context, name string, err error) {
	l.WarnContext(ctx, "dictionary unavailable",
		"dictionary", name,
		"error", err,
	)
}

// LogDictionaryRelease logs the release of an optional dictionary.
func (l *Logger) LogDictionaryRelease(ctx context.Context, name string, size int64) {
	l.InfoContext(ctx, "dictionary released",
		"dictionary", name,
		"bytes", size,
	)
}

// LogConvert logs a conversion query.
func (l *Logger) LogConvert(ctx context.Context, input string, n, results int, duration time.Duration) {
	l.DebugContext(ctx, "convert completed",
		"input", input,
		"n", n,
		"results", results,
		"duration", duration,
	)
}
