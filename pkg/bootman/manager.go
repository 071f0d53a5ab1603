package bootman

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/clearlinux/cbm/pkg/bootloader"
	"github.com/clearlinux/cbm/pkg/capability"
	"github.com/clearlinux/cbm/pkg/cerr"
	"github.com/clearlinux/cbm/pkg/kernel"
	"github.com/clearlinux/cbm/pkg/layout"
	"github.com/clearlinux/cbm/pkg/sysconfig"
)

// state is the three-value lifecycle from spec §4.7.
type state int

const (
	stateUnbound state = iota
	stateBound
	stateDisposed
)

// InitrdDescriptor identifies a freestanding initrd: an initrd fragment
// managed separately from any specific kernel (glossary).
type InitrdDescriptor struct {
	Path string
}

// Manager is the boot manager façade (spec §4.5). It is not safe for
// concurrent use (spec §5); callers must serialise their own access.
type Manager struct {
	state state

	prefix         string
	vendor         string
	uname          *kernel.SystemKernel
	imageMode      bool
	canMount       bool
	updateEFIVars  bool
	modulesEnabled bool

	rootDevice capability.BlockInfo

	blockProbe capability.BlockProbe
	system     capability.System
	bdr        capability.Bootloader

	sysconfig *sysconfig.Store

	freestandingInitrds map[string]InitrdDescriptor

	metrics *metrics
}

// New constructs an empty, unbound Manager over the given block-probe
// and system capabilities. Modules are resolved during discovery by
// default; callers that don't want module-directory attachment can
// still ignore the field on the returned Kernel records.
func New(blockProbe capability.BlockProbe, system capability.System) *Manager {
	return &Manager{
		state:               stateUnbound,
		blockProbe:          blockProbe,
		system:              system,
		modulesEnabled:      true,
		freestandingInitrds: map[string]InitrdDescriptor{},
		metrics:             newMetrics(),
	}
}

// Prefix, VendorPrefix, and ImageMode implement capability.ManagerInfo,
// the narrow view a Bootloader descriptor needs.
func (m *Manager) Prefix() string       { return m.prefix }
func (m *Manager) VendorPrefix() string { return m.vendor }
func (m *Manager) ImageMode() bool      { return m.imageMode }

func (m *Manager) bound() bool { return m.state == stateBound }

// SetPrefix requires path to be an existing directory; on failure it
// returns false and leaves the manager in its prior valid state. On
// success it (re)initialises the sysconfig store, probes the root
// device, locates the vendor prefix, and selects the bootloader
// descriptor for the detected firmware class (spec §4.5).
func (m *Manager) SetPrefix(path string) bool {
	if m.state == stateDisposed {
		slog.Error("SetPrefix called on disposed manager")
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		slog.Error("SetPrefix refused: not an existing directory", "path", path)
		return false
	}

	vendor, ok := vendorPrefixFromOSRelease(filepath.Join(path, layout.OSReleasePath))
	if !ok {
		slog.Error("SetPrefix refused: could not resolve vendor prefix from os-release", "path", path)
		return false
	}

	rootDevice, err := m.blockProbe.Probe(path)
	if err != nil {
		slog.Error("root device probe failed", "path", path, "error", err)
		return false
	}

	m.prefix = path
	m.vendor = vendor
	m.rootDevice = rootDevice
	m.sysconfig = sysconfig.New(path)
	m.bdr = bootloader.Select(m.system.FirmwareClass())
	m.state = stateBound

	discovered, err := kernel.Scan(path, vendor, m.modulesEnabled)
	m.metrics.observeScan(err)
	if err != nil {
		slog.Error("kernel scan during SetPrefix failed", "error", err)
		m.freestandingInitrds = map[string]InitrdDescriptor{}
		return true
	}
	freestanding, err := kernel.FreestandingInitrds(path, vendor, discovered)
	if err != nil {
		slog.Error("freestanding initrd scan failed", "error", err)
		freestanding = map[string]string{}
	}
	m.freestandingInitrds = make(map[string]InitrdDescriptor, len(freestanding))
	for name, p := range freestanding {
		m.freestandingInitrds[name] = InitrdDescriptor{Path: p}
	}

	return true
}

// SetUname parses s via the kernel grammar and, on success, stores it as
// the running-kernel override; on refusal the prior override is kept and
// false is returned (spec §4.5).
func (m *Manager) SetUname(s string) bool {
	sk, err := kernel.Parse(s)
	if err != nil {
		return false
	}
	m.uname = &sk
	return true
}

// GetSystemKernel returns a copy of the stored uname override, or nil if
// no SetUname call has succeeded yet. A refused SetUname leaves the
// earlier override in place, so it is still returned here.
func (m *Manager) GetSystemKernel() *kernel.SystemKernel {
	if m.uname == nil {
		return nil
	}
	cp := *m.uname
	return &cp
}

func (m *Manager) SetImageMode(v bool)     { m.imageMode = v }
func (m *Manager) SetCanMount(v bool)      { m.canMount = v }
func (m *Manager) SetUpdateEFIVars(v bool) { m.updateEFIVars = v }

func (m *Manager) CanMount() bool      { return m.canMount }
func (m *Manager) UpdateEFIVars() bool { return m.updateEFIVars }
func (m *Manager) RootDevice() capability.BlockInfo { return m.rootDevice }
func (m *Manager) Bootloader() capability.Bootloader { return m.bdr }

// FreestandingInitrds returns the cache populated during the last
// successful SetPrefix.
func (m *Manager) FreestandingInitrds() map[string]InitrdDescriptor {
	out := make(map[string]InitrdDescriptor, len(m.freestandingInitrds))
	for k, v := range m.freestandingInitrds {
		out[k] = v
	}
	return out
}

// ListKernels scans the active prefix and returns the discovered
// collection. The manager is otherwise stateless between operations
// (spec §2), so this re-scans on every call rather than caching.
func (m *Manager) ListKernels() (kernel.Collection, error) {
	if !m.bound() {
		return nil, cerr.New(cerr.CodeInvariant, "ListKernels called on an unbound or disposed manager")
	}
	c, err := kernel.Scan(m.prefix, m.vendor, m.modulesEnabled)
	m.metrics.observeScan(err)
	return c, err
}

// MapKernels partitions the current kernel collection by ktype.
func (m *Manager) MapKernels() (kernel.TypeIndex, error) {
	c, err := m.ListKernels()
	if err != nil {
		return nil, err
	}
	return c.ByType(), nil
}

// DefaultForType returns the default Kernel for ktype, or nil if none.
func (m *Manager) DefaultForType(ktype string) (*kernel.Kernel, error) {
	c, err := m.ListKernels()
	if err != nil {
		return nil, err
	}
	return c.DefaultForType(ktype), nil
}

// GetTimeout, SetTimeout, GetConsoleMode, and SetConsoleMode delegate to
// the bound sysconfig store; all refuse on an unbound or disposed
// manager (spec §4.7).
func (m *Manager) GetTimeout() (int, error) {
	if !m.bound() {
		return -1, cerr.New(cerr.CodeInvariant, "GetTimeout called on an unbound or disposed manager")
	}
	return m.sysconfig.GetTimeout(), nil
}

func (m *Manager) SetTimeout(n int) error {
	if !m.bound() {
		return cerr.New(cerr.CodeInvariant, "SetTimeout called on an unbound or disposed manager")
	}
	err := m.sysconfig.SetTimeout(n)
	m.metrics.observeWrite("set_timeout", err)
	return err
}

func (m *Manager) GetConsoleMode() (*string, error) {
	if !m.bound() {
		return nil, cerr.New(cerr.CodeInvariant, "GetConsoleMode called on an unbound or disposed manager")
	}
	return m.sysconfig.GetConsoleMode(), nil
}

func (m *Manager) SetConsoleMode(mode *string) error {
	if !m.bound() {
		return cerr.New(cerr.CodeInvariant, "SetConsoleMode called on an unbound or disposed manager")
	}
	err := m.sysconfig.SetConsoleMode(mode)
	m.metrics.observeWrite("set_console_mode", err)
	return err
}

// bootedMarkerPath returns the path of the k_booted_<v>-<r>.<t> presence
// marker for k (spec §6 on-disk layout).
func (m *Manager) bootedMarkerPath(k kernel.Kernel) string {
	name := fmt.Sprintf("k_booted_%s-%d.%s", k.Meta.Version, k.Meta.Release, k.Meta.KType)
	return filepath.Join(m.prefix, layout.BootedMarkerDir, name)
}

// ReportBooted touches the booted marker for k, creating the marker
// directory if necessary (supplemented feature, SPEC_FULL.md §4).
func (m *Manager) ReportBooted(k kernel.Kernel) error {
	if !m.bound() {
		return cerr.New(cerr.CodeInvariant, "ReportBooted called on an unbound or disposed manager")
	}
	dir := filepath.Join(m.prefix, layout.BootedMarkerDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		werr := cerr.WrapWithContext(cerr.CodeIO, "failed to create booted-marker directory", err, map[string]any{"path": dir})
		slog.Error(werr.Error())
		return werr
	}
	path := m.bootedMarkerPath(k)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		werr := cerr.WrapWithContext(cerr.CodeIO, "failed to touch booted marker", err, map[string]any{"path": path})
		slog.Error(werr.Error())
		return werr
	}
	return f.Close()
}

// HasBooted reports whether the booted marker for k exists.
func (m *Manager) HasBooted(k kernel.Kernel) bool {
	if !m.bound() {
		return false
	}
	_, err := os.Stat(m.bootedMarkerPath(k))
	return err == nil
}

// Close releases the manager's state; no operation other than a fresh
// New is valid afterward (spec §4.7's Disposed state).
func (m *Manager) Close() error {
	m.state = stateDisposed
	m.prefix = ""
	m.vendor = ""
	m.uname = nil
	m.bdr = nil
	m.sysconfig = nil
	m.freestandingInitrds = nil
	return nil
}
