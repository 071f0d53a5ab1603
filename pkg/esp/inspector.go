package esp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clearlinux/cbm/pkg/capability"
	"github.com/clearlinux/cbm/pkg/kernel"
	"github.com/clearlinux/cbm/pkg/layout"
)

// Status classifies a kernel's install state on the boot partition
// (spec §4.6's expected-file count contract).
type Status int

const (
	Uninstalled Status = iota
	Installed
	Corrupt
)

func (s Status) String() string {
	switch s {
	case Installed:
		return "installed"
	case Uninstalled:
		return "uninstalled"
	default:
		return "corrupt"
	}
}

// Inspector computes the expected ESP/legacy-boot-dir paths for a kernel
// under a bound prefix and classifies its install state.
type Inspector struct {
	Prefix     string
	Vendor     string
	Bootloader capability.Bootloader
	Info       capability.ManagerInfo
}

// New returns an Inspector for the given bound manager state.
func New(prefix, vendor string, bdr capability.Bootloader, info capability.ManagerInfo) *Inspector {
	return &Inspector{Prefix: prefix, Vendor: vendor, Bootloader: bdr, Info: info}
}

func bootDirFor(class capability.FirmwareClass) string {
	if class == capability.FirmwareUEFI {
		return layout.BootDirUEFI
	}
	return layout.BootDirLegacy
}

// ExpectedPaths returns the paths that must all exist for k to count as
// installed (spec §4.6). For UEFI this is the loader entry, the ESP
// kernel blob, and the ESP initrd (3 paths); for legacy it is the loader
// entry and the boot-dir kernel blob (2 paths) — the legacy initrd path
// named in spec §4.6's layout description is not part of the
// expected-file count contract, since legacy installs do not
// consistently materialise a copy there.
func (i *Inspector) ExpectedPaths(k kernel.Kernel) []string {
	boot := filepath.Join(i.Prefix, bootDirFor(i.Bootloader.FirmwareClass()))
	loaderEntry := filepath.Join(boot, layout.LoaderEntriesDir,
		fmt.Sprintf("%s-%s-%s-%d.conf", i.Vendor, k.Meta.KType, k.Meta.Version, k.Meta.Release))

	if i.Bootloader.FirmwareClass() != capability.FirmwareUEFI {
		blob := filepath.Join(boot, fmt.Sprintf("%s.%s.%s-%d", i.Vendor, k.Meta.KType, k.Meta.Version, k.Meta.Release))
		return []string{loaderEntry, blob}
	}

	subpath, ok := i.Bootloader.GetKernelDestination(i.Info)
	if !ok {
		subpath = fmt.Sprintf("efi/%s", i.Vendor)
	}
	blob := filepath.Join(boot, subpath, fmt.Sprintf("kernel-%s.%s.%s-%d", i.Vendor, k.Meta.KType, k.Meta.Version, k.Meta.Release))
	initrd := filepath.Join(boot, subpath, fmt.Sprintf("initrd-%s.%s.%s-%d", i.Vendor, k.Meta.KType, k.Meta.Version, k.Meta.Release))
	return []string{loaderEntry, blob, initrd}
}

// State classifies k by how many of its ExpectedPaths exist: all of them
// is Installed, none is Uninstalled, anything in between is Corrupt.
func (i *Inspector) State(k kernel.Kernel) Status {
	paths := i.ExpectedPaths(k)
	existing := 0
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing++
		}
	}
	switch existing {
	case len(paths):
		return Installed
	case 0:
		return Uninstalled
	default:
		return Corrupt
	}
}
