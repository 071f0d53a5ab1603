package blockprobe_test

import (
	"os"
	"testing"

	"github.com/clearlinux/cbm/pkg/blockprobe"
)

func TestTestProbeIsDeterministic(t *testing.T) {
	p := blockprobe.NewTestProbe()

	first, err := p.Probe("/dev/sda2")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	second, err := p.Probe("/dev/sda2")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if first.UUID != second.UUID || first.PartUUID != second.PartUUID {
		t.Fatalf("probe is not deterministic: %+v vs %+v", first, second)
	}
	if first.UUID == first.PartUUID {
		t.Fatalf("UUID and PartUUID collided: %q", first.UUID)
	}
}

func TestTestProbeDistinguishesDevices(t *testing.T) {
	p := blockprobe.NewTestProbe()

	a, err := p.Probe("/dev/sda2")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	b, err := p.Probe("/dev/sda3")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if a.UUID == b.UUID {
		t.Fatalf("distinct devices produced the same UUID: %q", a.UUID)
	}
}

func TestTestProbeRefusesEmptyDevice(t *testing.T) {
	p := blockprobe.NewTestProbe()
	if _, err := p.Probe(""); err == nil {
		t.Fatalf("expected error for empty device path")
	}
}

func TestNewForEnvironmentSelectsTestProbe(t *testing.T) {
	t.Setenv("CBM_BOOTVAR_TEST_MODE", "yes")
	probe := blockprobe.NewForEnvironment()
	if _, ok := probe.(*blockprobe.TestProbe); !ok {
		t.Fatalf("expected TestProbe under CBM_BOOTVAR_TEST_MODE, got %T", probe)
	}
}

func TestNewForEnvironmentSelectsRealProbe(t *testing.T) {
	os.Unsetenv("CBM_BOOTVAR_TEST_MODE")
	probe := blockprobe.NewForEnvironment()
	if _, ok := probe.(*blockprobe.Probe); !ok {
		t.Fatalf("expected real Probe without CBM_BOOTVAR_TEST_MODE, got %T", probe)
	}
}
