package esp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlinux/cbm/pkg/bootloader"
	"github.com/clearlinux/cbm/pkg/esp"
	"github.com/clearlinux/cbm/pkg/kernel"
	"github.com/clearlinux/cbm/pkg/layout"
)

type fakeManagerInfo struct {
	prefix, vendor string
}

func (f fakeManagerInfo) Prefix() string       { return f.prefix }
func (f fakeManagerInfo) VendorPrefix() string { return f.vendor }
func (f fakeManagerInfo) ImageMode() bool      { return false }

func testKernel() kernel.Kernel {
	return kernel.Kernel{Meta: kernel.SystemKernel{Version: "4.2.1", KType: "kvm", Release: 121}}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestUEFIExpectedPathsAndStates(t *testing.T) {
	prefix := t.TempDir()
	vendor := "clear-linux-os"
	bdr := bootloader.NewSystemdBoot()
	info := fakeManagerInfo{prefix: prefix, vendor: vendor}
	insp := esp.New(prefix, vendor, bdr, info)
	k := testKernel()

	paths := insp.ExpectedPaths(k)
	require.Len(t, paths, 3)
	assert.Equal(t, esp.Uninstalled, insp.State(k))

	for _, p := range paths {
		writeFile(t, p)
	}
	assert.Equal(t, esp.Installed, insp.State(k))

	require.NoError(t, os.Remove(paths[0]))
	assert.Equal(t, esp.Corrupt, insp.State(k))
}

func TestLegacyExpectedPathCount(t *testing.T) {
	prefix := t.TempDir()
	vendor := "clear-linux-os"
	bdr := bootloader.NewLegacy()
	info := fakeManagerInfo{prefix: prefix, vendor: vendor}
	insp := esp.New(prefix, vendor, bdr, info)

	paths := insp.ExpectedPaths(testKernel())
	assert.Len(t, paths, 2)
}

func TestUEFIPathsDefaultEspSubpathWithoutVendor(t *testing.T) {
	prefix := t.TempDir()
	bdr := bootloader.NewSystemdBoot()
	info := fakeManagerInfo{prefix: prefix}
	insp := esp.New(prefix, "clear-linux-os", bdr, info)

	paths := insp.ExpectedPaths(testKernel())
	want := filepath.Join(prefix, layout.BootDirUEFI, "efi/clear-linux-os", "kernel-clear-linux-os.kvm.4.2.1-121")
	assert.Equal(t, want, paths[1])
}
