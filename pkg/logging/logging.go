package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts a case-insensitive level name into a slog.Level.
// Unrecognised names fall back to slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger builds a JSON-to-stderr slog.Logger tagged with the
// given module and version, honouring CBM_DEBUG as a force-debug override.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	lvl := ParseLevel(level)
	if os.Getenv("CBM_DEBUG") != "" {
		lvl = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})

	return slog.New(handler).With("module", module, "version", version)
}

// SetDefaultStructuredLoggerWithLevel installs a NewStructuredLogger as the
// package-level slog default, for use from cmd/cbm's entrypoint.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// Fatal logs msg, prefixed with "fatal: ", and args at Error level and
// terminates the process with exit status 1. It is the mapping target for the core's OutOfMemory error
// kind (spec §7), which Go has no recoverable representation for.
func Fatal(ctx context.Context, msg string, args ...any) {
	slog.ErrorContext(ctx, fmt.Sprintf("fatal: %s", msg), args...)
	os.Exit(1)
}
