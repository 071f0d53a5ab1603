package sysconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clearlinux/cbm/pkg/layout"
	"github.com/clearlinux/cbm/pkg/sysconfig"
)

func fragmentPath(prefix, name string) string {
	return filepath.Join(prefix, layout.KernelConfDir, name)
}

func TestTimeoutRoundTrip(t *testing.T) {
	prefix := t.TempDir()
	store := sysconfig.New(prefix)

	// Literal "5" written directly, then read back (S6).
	if err := os.MkdirAll(filepath.Join(prefix, layout.KernelConfDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fragmentPath(prefix, layout.SysconfigTimeout), []byte("5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := store.GetTimeout(); got != 5 {
		t.Fatalf("GetTimeout after literal write = %d, want 5", got)
	}

	if err := store.SetTimeout(7); err != nil {
		t.Fatalf("SetTimeout(7): %v", err)
	}
	if got := store.GetTimeout(); got != 7 {
		t.Fatalf("GetTimeout = %d, want 7", got)
	}

	if err := store.SetTimeout(0); err != nil {
		t.Fatalf("SetTimeout(0): %v", err)
	}
	if got := store.GetTimeout(); got != -1 {
		t.Fatalf("GetTimeout after SetTimeout(0) = %d, want -1", got)
	}
	if _, err := os.Stat(fragmentPath(prefix, layout.SysconfigTimeout)); !os.IsNotExist(err) {
		t.Fatalf("timeout file should not exist after SetTimeout(0)")
	}
}

func TestTimeoutIdempotent(t *testing.T) {
	prefix := t.TempDir()
	store := sysconfig.New(prefix)

	if err := store.SetTimeout(9); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(fragmentPath(prefix, layout.SysconfigTimeout))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetTimeout(9); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(fragmentPath(prefix, layout.SysconfigTimeout))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("file contents changed across idempotent writes: %q vs %q", first, second)
	}

	if err := store.SetTimeout(0); err != nil {
		t.Fatal(err)
	}
	if err := store.SetTimeout(0); err != nil {
		t.Fatal(err)
	}
}

func TestConsoleModeRoundTrip(t *testing.T) {
	prefix := t.TempDir()
	store := sysconfig.New(prefix)

	if err := os.MkdirAll(filepath.Join(prefix, layout.KernelConfDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fragmentPath(prefix, layout.SysconfigConsoleMode), []byte("max\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := store.GetConsoleMode(); got == nil || *got != "max" {
		t.Fatalf("GetConsoleMode after literal write = %v, want max", got)
	}

	auto := "auto"
	if err := store.SetConsoleMode(&auto); err != nil {
		t.Fatal(err)
	}
	if got := store.GetConsoleMode(); got == nil || *got != "auto" {
		t.Fatalf("GetConsoleMode = %v, want auto", got)
	}

	if err := store.SetConsoleMode(nil); err != nil {
		t.Fatal(err)
	}
	if got := store.GetConsoleMode(); got != nil {
		t.Fatalf("GetConsoleMode after delete = %v, want nil", got)
	}
	if _, err := os.Stat(fragmentPath(prefix, layout.SysconfigConsoleMode)); !os.IsNotExist(err) {
		t.Fatalf("console_mode file should not exist after delete")
	}
}

func TestReadMissingFileReturnsNilNoError(t *testing.T) {
	store := sysconfig.New(t.TempDir())
	value, err := store.Read(layout.SysconfigTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil value for missing file, got %v", *value)
	}
}

func TestWriteRefusesUnknownName(t *testing.T) {
	store := sysconfig.New(t.TempDir())
	contents := "x"
	if err := store.Write("bogus", &contents); err == nil {
		t.Fatalf("expected refusal for unknown sysconfig name")
	}
}

func TestReadEmptyFileReturnsNil(t *testing.T) {
	prefix := t.TempDir()
	if err := os.MkdirAll(filepath.Join(prefix, layout.KernelConfDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fragmentPath(prefix, layout.SysconfigTimeout), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	store := sysconfig.New(prefix)
	value, err := store.Read(layout.SysconfigTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for empty file, got %v", *value)
	}
}
