package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// DebugEnabled returns true if debug mode is enabled via TOGGL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TOGGL_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Printf(format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Println(args...)
	}
}

// NewLogger returns a structured logger for internal components such as
// the HTTP client. It writes to stderr so command output stays parseable.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose || DebugEnabled() {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
