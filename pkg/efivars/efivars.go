package efivars

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coreos/go-systemd/v22/journal"
	"golang.org/x/sys/unix"

	"github.com/clearlinux/cbm/pkg/capability"
	"github.com/clearlinux/cbm/pkg/cerr"
)

const (
	testModeEnv   = "CBM_BOOTVAR_TEST_MODE"
	testFSTypeEnv = "CBM_TEST_FSTYPE"
	efiVarsDir    = "firmware/efi/efivars"
)

// fsTypeNames maps the statfs f_type magic numbers this module cares
// about to the name conventionally reported by mount(8)/df -T.
var fsTypeNames = map[int64]string{
	0xEF53:     "ext4",
	0x4d44:     "vfat",
	0x58465342: "xfs",
	0x9123683E: "btrfs",
	0x01021994: "tmpfs",
}

// System is the default capability.System implementation. sysfsRoot and
// devfsRoot are configurable so tests can point them at a fixture tree
// instead of the real /sys and /dev.
type System struct {
	sysfsRoot      string
	devfsRoot      string
	testMode       bool
	testFSType     string
	syncAfterWrite bool
}

// NewForEnvironment returns a System rooted at sysfsRoot/devfsRoot, with
// CBM_BOOTVAR_TEST_MODE and CBM_TEST_FSTYPE read once at construction
// (spec §9: env vars are read-only after startup).
func NewForEnvironment(sysfsRoot, devfsRoot string) *System {
	return &System{
		sysfsRoot:      sysfsRoot,
		devfsRoot:      devfsRoot,
		testMode:       os.Getenv(testModeEnv) == "yes",
		testFSType:     os.Getenv(testFSTypeEnv),
		syncAfterWrite: true,
	}
}

func (s *System) SysfsPath() string { return s.sysfsRoot }
func (s *System) DevfsPath() string { return s.devfsRoot }

// FirmwareClass reports UEFI when sysfsRoot/firmware/efi exists, legacy
// otherwise.
func (s *System) FirmwareClass() capability.FirmwareClass {
	if _, err := os.Stat(filepath.Join(s.sysfsRoot, "firmware", "efi")); err == nil {
		return capability.FirmwareUEFI
	}
	return capability.FirmwareLegacy
}

// logBypass records a test-mode EFI variable access through the systemd
// journal when available, falling back to pkg/logging's slog default
// when not running under systemd (e.g. in `go test`).
func (s *System) logBypass(op, name string) {
	msg := fmt.Sprintf("efivars bypass: %s %s", op, name)
	if ok, _ := journal.StderrIsJournalStream(); ok {
		_ = journal.Send(msg, journal.PriInfo, map[string]string{"EFIVAR": name, "OP": op})
		return
	}
	slog.Debug(msg, "var", name, "op", op)
}

// ReadEFIVar is refused outright in test mode: there is no fixture EFI
// variable store, only a bypass that lets writers proceed without one.
func (s *System) ReadEFIVar(name string) ([]byte, error) {
	if s.testMode {
		s.logBypass("read", name)
		return nil, cerr.New(cerr.CodeIO, fmt.Sprintf("EFI variable %q not available in test mode", name))
	}
	path := filepath.Join(s.sysfsRoot, efiVarsDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerr.WrapWithContext(cerr.CodeIO, "failed to read EFI variable", err, map[string]any{"name": name})
	}
	return data, nil
}

// WriteEFIVar is a no-op in test mode beyond logging.
func (s *System) WriteEFIVar(name string, value []byte) error {
	if s.testMode {
		s.logBypass("write", name)
		return nil
	}
	path := filepath.Join(s.sysfsRoot, efiVarsDir, name)
	if err := os.WriteFile(path, value, 0o644); err != nil {
		return cerr.WrapWithContext(cerr.CodeIO, "failed to write EFI variable", err, map[string]any{"name": name})
	}
	if s.syncAfterWrite {
		s.syncPath(path)
	}
	return nil
}

func (s *System) syncPath(path string) {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("failed to open EFI variable file for sync", "path", path, "error", err)
		return
	}
	defer f.Close()
	if err := f.Sync(); err != nil {
		slog.Error("failed to sync EFI variable file", "path", path, "error", err)
	}
}

// DetectFSType honours CBM_TEST_FSTYPE verbatim in test mode; otherwise
// it statfs's path and maps the magic number to a filesystem name.
func (s *System) DetectFSType(path string) (string, error) {
	if s.testMode && s.testFSType != "" {
		return s.testFSType, nil
	}

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return "", cerr.WrapWithContext(cerr.CodeIO, "statfs failed", err, map[string]any{"path": path})
	}
	if name, ok := fsTypeNames[int64(st.Type)]; ok {
		return name, nil
	}
	return fmt.Sprintf("unknown(%#x)", st.Type), nil
}

func (s *System) SyncAfterWrite() bool      { return s.syncAfterWrite }
func (s *System) SetSyncAfterWrite(v bool) { s.syncAfterWrite = v }
