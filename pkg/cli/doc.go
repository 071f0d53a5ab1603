// Package cli implements the cbm command-line surface (SPEC_FULL.md §5):
// set-console-mode, get-console-mode, set-timeout, get-timeout,
// list-kernels, report-booted, and check-all, all sharing a persistent
// --root prefix flag (default "/") and --update-efi-vars flag, built
// with the teacher's urfave/cli/v3 one-file-per-command convention
// (pkg/cli/snapshot.go, validate.go, bundle.go).
package cli
