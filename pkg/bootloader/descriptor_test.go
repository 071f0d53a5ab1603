package bootloader_test

import (
	"testing"

	"github.com/clearlinux/cbm/pkg/bootloader"
	"github.com/clearlinux/cbm/pkg/capability"
)

type fakeManagerInfo struct {
	prefix, vendor string
	imageMode      bool
}

func (f fakeManagerInfo) Prefix() string       { return f.prefix }
func (f fakeManagerInfo) VendorPrefix() string { return f.vendor }
func (f fakeManagerInfo) ImageMode() bool      { return f.imageMode }

func TestSystemdBootDestination(t *testing.T) {
	b := bootloader.NewSystemdBoot()
	path, ok := b.GetKernelDestination(fakeManagerInfo{prefix: "/", vendor: "clear-linux-os"})
	if !ok {
		t.Fatal("expected ok=true once vendor prefix is known")
	}
	if path != "efi/clear-linux-os" {
		t.Fatalf("GetKernelDestination = %q, want efi/clear-linux-os", path)
	}
	if b.FirmwareClass() != capability.FirmwareUEFI {
		t.Fatalf("FirmwareClass = %v, want UEFI", b.FirmwareClass())
	}
}

func TestSystemdBootDestinationUnavailableWithoutVendor(t *testing.T) {
	b := bootloader.NewSystemdBoot()
	if _, ok := b.GetKernelDestination(fakeManagerInfo{}); ok {
		t.Fatal("expected ok=false with no vendor prefix")
	}
}

func TestLegacyNeverHasDestination(t *testing.T) {
	l := bootloader.NewLegacy()
	if _, ok := l.GetKernelDestination(fakeManagerInfo{vendor: "clear-linux-os"}); ok {
		t.Fatal("legacy descriptor should never report an esp_subpath")
	}
	if l.FirmwareClass() != capability.FirmwareLegacy {
		t.Fatalf("FirmwareClass = %v, want Legacy", l.FirmwareClass())
	}
}

func TestSelect(t *testing.T) {
	if _, ok := bootloader.Select(capability.FirmwareUEFI).(*bootloader.SystemdBoot); !ok {
		t.Fatal("Select(UEFI) should return SystemdBoot")
	}
	if _, ok := bootloader.Select(capability.FirmwareLegacy).(*bootloader.Legacy); !ok {
		t.Fatal("Select(Legacy) should return Legacy")
	}
	if _, ok := bootloader.Select(capability.FirmwareUnknown).(*bootloader.Legacy); !ok {
		t.Fatal("Select(Unknown) should fall back to Legacy")
	}
}
