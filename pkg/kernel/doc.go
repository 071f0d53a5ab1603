// Package kernel implements the SystemKernel identity parser, the Kernel
// discovery scanner, and the collection/index helpers that group
// discovered kernels by type and resolve per-type defaults (spec §4.1,
// §4.3, §4.4).
//
// The parser is a pure function: it is allocation-light, deterministic,
// and never partially populates its result — either all three fields of
// a SystemKernel are set, or the call refuses and returns a zero value.
// Discovery walks a prefix-rooted directory tree and is the only part of
// this package that performs I/O.
package kernel
