// Package logging provides structured logging utilities for cbm components.
//
// # Overview
//
// This package wraps the standard library slog package with cbm-specific
// defaults and conventions for consistent logging across the core, the
// capability implementations, and the CLI. It maps the error-kind
// taxonomy of the boot-manager core (parse refusal, I/O failure,
// invariant violation, out-of-memory) onto log levels: debug for parse
// refusals, error for I/O failures and invariant violations, and a
// fatal exit path for out-of-memory conditions.
//
// # Environment Configuration
//
// The CBM_DEBUG environment variable, when set to a non-empty value,
// forces debug-level logging regardless of the level passed to
// SetDefaultStructuredLoggerWithLevel. This mirrors the original tool's
// CBM_DEBUG switch.
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("cbm", version, "info")
//	    slog.Info("starting", "prefix", root)
//	}
//
// # Output Format
//
// Logs are written to stderr in JSON format so that stdout remains free
// for the CLI's user-facing result (per the CLI surface contract).
package logging
