package layout

// Fixed prefix-relative directories and files the core reasons about.
// These names are a closed set; the grammar and scan logic in pkg/kernel
// and pkg/sysconfig assume exactly this layout (spec §6).
const (
	// OSReleasePath is the prefix-relative path to os-release, used to
	// resolve the vendor prefix.
	OSReleasePath = "/usr/lib/os-release"

	// KernelConfDir holds the small sysconfig fragments (timeout,
	// console_mode).
	KernelConfDir = "/etc/kernel"

	// KernelDir holds kernel blobs, initrds, cmdline/config siblings, and
	// default-<ktype> symlinks.
	KernelDir = "/usr/lib/kernel"

	// ModulesDir holds per-(version-release) module trees, when modules
	// are enabled.
	ModulesDir = "/usr/lib/modules"

	// BootedMarkerDir holds k_booted_<v>-<r>.<t> presence markers.
	BootedMarkerDir = "/var/lib/kernel"

	// BootDirUEFI and BootDirLegacy are the two candidate roots for the
	// ESP/legacy boot directory, selected by firmware class.
	BootDirUEFI   = "/boot"
	BootDirLegacy = "/boot"

	// LoaderEntriesDir is relative to the boot directory.
	LoaderEntriesDir = "loader/entries"
)

// Sysconfig filenames. This is the closed set referenced by spec §3's
// invariant: "Sysconfig filenames are from a closed set... unknown names
// are refused at the boundary."
const (
	SysconfigTimeout     = "timeout"
	SysconfigConsoleMode = "console_mode"
)

// IsKnownSysconfigName reports whether name is one of the closed set of
// sysconfig fragment names the store will read or write.
func IsKnownSysconfigName(name string) bool {
	switch name {
	case SysconfigTimeout, SysconfigConsoleMode:
		return true
	default:
		return false
	}
}

// ConsoleModeValues is the set of console_mode tokens recognised at the
// CLI boundary (spec §4.2); the store itself does not enforce this.
var ConsoleModeValues = map[string]bool{
	"":     true,
	"0":    true,
	"1":    true,
	"2":    true,
	"auto": true,
	"max":  true,
	"keep": true,
}
