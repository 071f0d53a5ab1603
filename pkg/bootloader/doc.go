// Package bootloader provides the capability.Bootloader descriptors the
// boot manager selects by firmware class (spec §4.5, §4.6). The actual
// binary copy/update strategy for systemd-boot, gummiboot, goofiboot, or
// shim is an external collaborator out of this module's scope; these
// descriptors only carry the naming and ESP-subpath conventions the ESP
// inspector needs.
package bootloader
