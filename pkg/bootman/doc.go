// Package bootman implements the boot manager façade (spec §4.5): the
// Manager type holds the active prefix, uname override, mode flags,
// vendor prefix, and the capability implementations (block-probe,
// system, bootloader) it was configured with, and exposes the core
// kernel/sysconfig operations over them. It tracks the three-state
// lifecycle from spec §4.7: unbound, bound, disposed.
package bootman
