// Package efivars implements capability.System. Real EFI variable I/O
// goes through efivarfs under the configured sysfs root; setting
// CBM_BOOTVAR_TEST_MODE=yes bypasses it entirely so tests never touch
// firmware, and CBM_TEST_FSTYPE overrides filesystem-type detection the
// same way (spec §6, §9). Bypassed writes are still logged: through the
// systemd journal when running under systemd, otherwise through
// pkg/logging.
package efivars
