package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/clearlinux/cbm/pkg/layout"
)

// NewPrefix creates an empty playground root prefix rooted at t.TempDir().
func NewPrefix(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// KernelSpec describes a single kernel to fabricate under the playground
// kernel directory.
type KernelSpec struct {
	Vendor      string
	KType       string
	Version     string
	Release     int
	WithInitrd  bool
	WithCmdline bool
	WithConfig  bool
	WithModule  bool
}

func blobName(s KernelSpec) string {
	return fmt.Sprintf("%s.%s.%s-%d", s.Vendor, s.KType, s.Version, s.Release)
}

// WriteKernel fabricates the blob and requested sibling files for spec
// under <prefix>/<KernelDir>, creating the directory if needed.
func WriteKernel(t *testing.T, prefix string, spec KernelSpec) {
	t.Helper()
	dir := filepath.Join(prefix, layout.KernelDir)
	mustMkdirAll(t, dir)

	mustWriteFile(t, filepath.Join(dir, blobName(spec)), "kernel-blob")

	if spec.WithInitrd {
		mustWriteFile(t, filepath.Join(dir, "initrd-"+blobName(spec)), "initrd")
	}
	if spec.WithCmdline {
		name := fmt.Sprintf("cmdline-%s-%d.%s", spec.Version, spec.Release, spec.KType)
		mustWriteFile(t, filepath.Join(dir, name), "console=tty0")
	}
	if spec.WithConfig {
		name := fmt.Sprintf("config-%s-%d.%s", spec.Version, spec.Release, spec.KType)
		mustWriteFile(t, filepath.Join(dir, name), "CONFIG_FOO=y")
	}
	if spec.WithModule {
		modDir := filepath.Join(prefix, layout.ModulesDir, fmt.Sprintf("%s-%d", spec.Version, spec.Release))
		mustMkdirAll(t, modDir)
	}
}

// SetDefault creates a default-<ktype> symlink pointing at the given
// kernel's blob filename.
func SetDefault(t *testing.T, prefix string, spec KernelSpec) {
	t.Helper()
	dir := filepath.Join(prefix, layout.KernelDir)
	mustMkdirAll(t, dir)

	link := filepath.Join(dir, "default-"+spec.KType)
	_ = os.Remove(link)
	if err := os.Symlink(blobName(spec), link); err != nil {
		t.Fatalf("symlink default-%s: %v", spec.KType, err)
	}
}

// WriteOSRelease writes a minimal os-release file carrying PRETTY_NAME,
// used to resolve the vendor prefix during SetPrefix.
func WriteOSRelease(t *testing.T, prefix, prettyName string) {
	t.Helper()
	path := filepath.Join(prefix, layout.OSReleasePath)
	mustMkdirAll(t, filepath.Dir(path))
	mustWriteFile(t, path, fmt.Sprintf("PRETTY_NAME=%q\n", prettyName))
}

func mustMkdirAll(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func mustWriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
