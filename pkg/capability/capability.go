package capability

// FirmwareClass distinguishes the two bootloader families the ESP
// inspector lays out paths for (spec §4.6).
type FirmwareClass int

const (
	FirmwareUnknown FirmwareClass = iota
	FirmwareUEFI
	FirmwareLegacy
)

func (f FirmwareClass) String() string {
	switch f {
	case FirmwareUEFI:
		return "uefi"
	case FirmwareLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// BlockInfo is the result of probing a block device for its identifying
// UUIDs (spec §6).
type BlockInfo struct {
	Dev      string
	UUID     string
	PartUUID string
	LUKSUUID string
}

// BlockProbe resolves a device path to its identifying UUIDs. The blkid
// backend itself is an external collaborator out of this module's scope
// (spec §1). pkg/blockprobe ships two implementations: one that shells
// out to the host's blkid binary, and a deterministic test-mode one.
type BlockProbe interface {
	Probe(device string) (BlockInfo, error)
}

// ManagerInfo is the narrow read-only view of the boot manager that a
// Bootloader descriptor needs to compute its ESP subpath, without
// creating an import cycle back into pkg/bootman.
type ManagerInfo interface {
	Prefix() string
	VendorPrefix() string
	ImageMode() bool
}

// Bootloader describes a bootloader family's naming and ESP placement
// conventions (spec §6). The actual binary copy/update strategy for a
// given bootloader (systemd-boot, gummiboot, goofiboot, shim) is an
// external collaborator; this module only carries the descriptor used by
// the ESP inspector.
type Bootloader interface {
	Name() string
	FirmwareClass() FirmwareClass
	// GetKernelDestination returns the ESP subpath under the boot
	// directory kernels and initrds are installed to, or ok=false when
	// the bootloader has no opinion (the caller then defaults to
	// "efi/<vendor>").
	GetKernelDestination(info ManagerInfo) (path string, ok bool)
}

// System exposes firmware and filesystem queries the core needs but does
// not implement itself: sysfs/devfs roots, firmware class detection, EFI
// variable access (bypassed in test mode), filesystem-type detection, and
// the sync-after-write toggle (spec §6, §9).
type System interface {
	SysfsPath() string
	DevfsPath() string
	FirmwareClass() FirmwareClass

	ReadEFIVar(name string) ([]byte, error)
	WriteEFIVar(name string, value []byte) error

	DetectFSType(path string) (string, error)

	SyncAfterWrite() bool
	SetSyncAfterWrite(bool)
}
