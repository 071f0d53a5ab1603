// Package config holds the process-wide CLI configuration: the root
// prefix, mode flags, and environment overrides that pkg/cli builds for
// each command and applies to pkg/bootman (SPEC_FULL.md §2.3), built with the teacher's
// immutable functional-option pattern (pkg/bundler/config).
package config
