// Package sysconfig implements the prefix-scoped reader/writer for the
// small single-value text configuration fragments under the kernel
// config directory (spec §4.2): timeout and console_mode. Reads and
// writes are not crash-atomic; a crash mid-write leaves a truncated file,
// which Read then treats as an absent value (spec §5).
package sysconfig
