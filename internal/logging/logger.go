// Package logging builds the slog logger used for diagnostics.
// Diagnostics go to stderr so the report and the run summary stay clean.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultLevel keeps normal runs quiet.
const DefaultLevel = "warn"

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		// Source locations only help when debugging.
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler)
}

// ParseLevel maps debug, info, warn or error to a slog level.
// An empty name falls back to LOG_LEVEL and then to DefaultLevel.
func ParseLevel(name string) (slog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		name = strings.TrimSpace(strings.ToLower(os.Getenv("LOG_LEVEL")))
	}
	if name == "" {
		name = DefaultLevel
	}
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("--log-level must be one of debug, info, warn, error (got %q)", name)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
