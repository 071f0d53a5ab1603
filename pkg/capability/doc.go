// Package capability defines the narrow vtable interfaces the boot-manager
// core consumes from external collaborators (spec §6): block-device
// probing, system/firmware queries including EFI variable access, and
// bootloader descriptors. The core never instantiates these directly —
// pkg/bootman.Manager is configured with concrete implementations (see
// pkg/blockprobe, pkg/efivars, pkg/bootloader for the default and
// test-mode ones this module ships).
package capability
