package efivars_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clearlinux/cbm/pkg/capability"
	"github.com/clearlinux/cbm/pkg/efivars"
)

func TestFirmwareClassDetection(t *testing.T) {
	uefiRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(uefiRoot, "firmware", "efi"), 0o755); err != nil {
		t.Fatal(err)
	}
	uefi := efivars.NewForEnvironment(uefiRoot, t.TempDir())
	if uefi.FirmwareClass() != capability.FirmwareUEFI {
		t.Fatalf("FirmwareClass = %v, want UEFI", uefi.FirmwareClass())
	}

	legacy := efivars.NewForEnvironment(t.TempDir(), t.TempDir())
	if legacy.FirmwareClass() != capability.FirmwareLegacy {
		t.Fatalf("FirmwareClass = %v, want Legacy", legacy.FirmwareClass())
	}
}

func TestEFIVarBypassInTestMode(t *testing.T) {
	t.Setenv("CBM_BOOTVAR_TEST_MODE", "yes")
	sys := efivars.NewForEnvironment(t.TempDir(), t.TempDir())

	if err := sys.WriteEFIVar("BootOrder", []byte{0x01}); err != nil {
		t.Fatalf("WriteEFIVar should be a no-op in test mode, got %v", err)
	}
	if _, err := sys.ReadEFIVar("BootOrder"); err == nil {
		t.Fatal("ReadEFIVar should refuse in test mode")
	}
}

func TestDetectFSTypeOverride(t *testing.T) {
	t.Setenv("CBM_BOOTVAR_TEST_MODE", "yes")
	t.Setenv("CBM_TEST_FSTYPE", "vfat")
	sys := efivars.NewForEnvironment(t.TempDir(), t.TempDir())

	got, err := sys.DetectFSType("/any/path")
	if err != nil {
		t.Fatalf("DetectFSType: %v", err)
	}
	if got != "vfat" {
		t.Fatalf("DetectFSType = %q, want vfat", got)
	}
}

func TestSyncAfterWriteToggle(t *testing.T) {
	sys := efivars.NewForEnvironment(t.TempDir(), t.TempDir())
	if !sys.SyncAfterWrite() {
		t.Fatal("expected sync-after-write to default true")
	}
	sys.SetSyncAfterWrite(false)
	if sys.SyncAfterWrite() {
		t.Fatal("SetSyncAfterWrite(false) did not take effect")
	}
}
