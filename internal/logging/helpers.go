package logging

import (
	"context"
	"log/slog"
)

// Debug logs at debug level when a logger is configured.
func Debug(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelDebug, msg, args)
}

// Info logs an info message when a logger is configured.
func Info(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelInfo, msg, args)
}

// Warn logs a warning when a logger is configured.
func Warn(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelWarn, msg, args)
}

// Error logs an error when a logger is configured. A non-nil err is attached under "error".
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err)
	}
	logAt(logger, slog.LevelError, msg, args)
}

func logAt(logger *slog.Logger, level slog.Level, msg string, args []any) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, msg, args...)
}
