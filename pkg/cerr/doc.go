// Package cerr provides structured error types for the boot-manager core.
//
// # Overview
//
// The core never panics: every fallible operation reports failure through
// its return values, either a false/nil result (SetPrefix, SetUname) or a
// returned error (spec §7). Those errors are *StructuredError values that
// carry an error code, a human-readable message, an optional cause, and
// optional context for logging. This mirrors the teacher
// package's approach (structured error codes for observability) adapted
// to the four error kinds the core distinguishes:
//
//   - CodeParseRefusal: input did not match the kernel identity grammar.
//   - CodeIO: a filesystem operation failed.
//   - CodeInvariant: on-disk state contradicts an invariant.
//   - CodeOOM: fatal, the caller aborts.
//
// StructuredError implements the standard error interface and supports
// errors.Is/errors.As through Unwrap.
package cerr
