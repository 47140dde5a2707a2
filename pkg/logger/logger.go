// Package logger wraps slog.Logger with the small set of convenience
// constructors the pipeline stages use to scope log output.
package logger

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with additional convenience methods.
type Logger struct {
	*slog.Logger
}

// New creates a new structured logger.
func New(level string) *Logger {
	var logLevel slog.Level
	switch level {
	case "debug", "DEBUG":
		logLevel = slog.LevelDebug
	case "info", "INFO":
		logLevel = slog.LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		logLevel = slog.LevelWarn
	case "error", "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if os.Getenv("ENVIRONMENT") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithComponent creates a logger scoped to a pipeline stage or component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("component", component)),
	}
}

// With creates a logger with additional structured key/value pairs attached
// to its context, mirroring slog.Logger.With but preserving the *Logger type
// so call sites can keep chaining WithComponent/WithError/StageTiming.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// WithError creates a logger with an error attached to its context.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// StageTiming logs how long a pipeline stage took. Call sites gate this on
// the time_measuring config option.
func (l *Logger) StageTiming(stage string, started time.Time) {
	l.Logger.Info("stage completed", slog.String("stage", stage), slog.Duration("duration", time.Since(started)))
}
