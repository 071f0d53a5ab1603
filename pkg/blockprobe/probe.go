package blockprobe

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"

	"github.com/clearlinux/cbm/pkg/capability"
	"github.com/clearlinux/cbm/pkg/cerr"
)

// testModeEnv mirrors the env var pkg/efivars bypasses real firmware I/O
// with; block probing bypasses the same way under the same switch so a
// single env var puts the whole module in test mode.
const testModeEnv = "CBM_BOOTVAR_TEST_MODE"

// namespace roots the deterministic UUIDs the test probe derives from a
// device path, so repeated probes of the same path are stable.
var namespace = uuid.MustParse("b9c4a6ec-6e33-4b8a-8e2f-5a0e9f9d6a41")

// Probe shells out to blkid the way the corpus shells out to other host
// tools (helm, systemctl): it never links a superblock-parsing library,
// it parses whatever stable CLI output the host tool offers.
type Probe struct{}

// New returns a Probe that calls the real blkid binary.
func New() *Probe {
	return &Probe{}
}

// NewForEnvironment returns a TestProbe when CBM_BOOTVAR_TEST_MODE=yes,
// otherwise a Probe backed by the real blkid binary.
func NewForEnvironment() capability.BlockProbe {
	if os.Getenv(testModeEnv) == "yes" {
		return NewTestProbe()
	}
	return New()
}

// Probe runs `blkid -o export <device>` and maps its KEY=VALUE output to
// a BlockInfo. A device with TYPE=crypto_LUKS reports its blkid UUID as
// LUKSUUID rather than UUID, since that UUID identifies the LUKS header,
// not a mountable filesystem.
func (p *Probe) Probe(device string) (capability.BlockInfo, error) {
	path, err := exec.LookPath("blkid")
	if err != nil {
		return capability.BlockInfo{}, cerr.Wrap(cerr.CodeIO, "blkid not found in PATH", err)
	}

	cmd := exec.Command(path, "-o", "export", device)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return capability.BlockInfo{}, cerr.WrapWithContext(cerr.CodeIO, "blkid invocation failed", err, map[string]any{"device": device})
	}

	fields := map[string]string{}
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = value
	}

	info := capability.BlockInfo{
		Dev:      device,
		PartUUID: fields["PARTUUID"],
	}
	if fields["TYPE"] == "crypto_LUKS" {
		info.LUKSUUID = fields["UUID"]
	} else {
		info.UUID = fields["UUID"]
	}

	slog.Debug("probed block device", "device", device, "uuid", info.UUID, "part_uuid", info.PartUUID, "luks_uuid", info.LUKSUUID)
	return info, nil
}

// TestProbe synthesizes stable UUIDs from the device path instead of
// touching a real block device, so kernel-discovery and bootman tests
// never require root or a loopback device.
type TestProbe struct{}

// NewTestProbe returns a deterministic, device-free BlockProbe.
func NewTestProbe() *TestProbe {
	return &TestProbe{}
}

// Probe derives UUID and PartUUID from device via SHA-1 UUIDs rooted at
// a fixed namespace; LUKSUUID is left empty since no test fixture in
// this module models an encrypted volume.
func (t *TestProbe) Probe(device string) (capability.BlockInfo, error) {
	if device == "" {
		return capability.BlockInfo{}, cerr.New(cerr.CodeInvariant, "empty device path")
	}
	return capability.BlockInfo{
		Dev:      device,
		UUID:     uuid.NewSHA1(namespace, []byte(fmt.Sprintf("uuid:%s", device))).String(),
		PartUUID: uuid.NewSHA1(namespace, []byte(fmt.Sprintf("partuuid:%s", device))).String(),
	}, nil
}
