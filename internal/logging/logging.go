package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the package-level structured logger. Setup replaces it.
var Logger *slog.Logger = slog.Default()

// Verbose reports whether debug logging is enabled.
var Verbose bool

// Setup configures the package logger.
//
// verbose enables debug-level output, json selects the JSON handler, and w is
// the destination (stderr when nil).
func Setup(verbose, json bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Logger = slog.New(handler)
}

// Debug logs at debug level. No-op unless Setup was called with verbose=true.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger with the given attributes attached.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
