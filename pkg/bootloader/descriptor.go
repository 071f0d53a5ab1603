package bootloader

import (
	"fmt"

	"github.com/clearlinux/cbm/pkg/capability"
)

// SystemdBoot is the modern UEFI descriptor: kernels and initrds live
// under an esp_subpath namespaced by vendor (spec §4.6).
type SystemdBoot struct{}

// NewSystemdBoot returns the systemd-boot/gummiboot/goofiboot-family
// descriptor. The three share one ESP layout convention; this module does
// not distinguish which binary actually owns the ESP since installing it
// is an external collaborator (spec §1).
func NewSystemdBoot() *SystemdBoot { return &SystemdBoot{} }

func (s *SystemdBoot) Name() string { return "systemd-boot" }

func (s *SystemdBoot) FirmwareClass() capability.FirmwareClass {
	return capability.FirmwareUEFI
}

// GetKernelDestination returns "efi/<vendor>", the ESP subpath every
// UEFI descriptor in this module resolves to. ok is false only when the
// manager has no vendor prefix yet (unbound), matching the "returns
// nil/empty when unavailable" contract in spec §4.6.
func (s *SystemdBoot) GetKernelDestination(info capability.ManagerInfo) (string, bool) {
	vendor := info.VendorPrefix()
	if vendor == "" {
		return "", false
	}
	return fmt.Sprintf("efi/%s", vendor), true
}

// Legacy is the pre-namespace BIOS/legacy descriptor: kernels and
// initrds sit directly under the boot directory, with no esp_subpath
// (spec §4.6).
type Legacy struct{}

// NewLegacy returns the legacy boot-directory descriptor.
func NewLegacy() *Legacy { return &Legacy{} }

func (l *Legacy) Name() string { return "legacy" }

func (l *Legacy) FirmwareClass() capability.FirmwareClass {
	return capability.FirmwareLegacy
}

// GetKernelDestination always reports unavailable: the legacy layout
// never namespaces kernel blobs under an ESP subpath.
func (l *Legacy) GetKernelDestination(info capability.ManagerInfo) (string, bool) {
	return "", false
}

// Select returns the descriptor this module ships for the given
// firmware class. FirmwareUnknown falls back to Legacy, the more
// conservative layout.
func Select(class capability.FirmwareClass) capability.Bootloader {
	if class == capability.FirmwareUEFI {
		return NewSystemdBoot()
	}
	return NewLegacy()
}
