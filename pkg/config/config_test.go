package config_test

import (
	"testing"

	"github.com/clearlinux/cbm/pkg/config"
)

func TestDefaults(t *testing.T) {
	c := config.New()
	if c.Prefix() != "/" {
		t.Errorf("Prefix() = %q, want /", c.Prefix())
	}
	if c.UpdateEFIVars() || c.ImageMode() || c.CanMount() || c.BootvarTestMode() {
		t.Error("expected all flags to default false")
	}
}

func TestOptionsApply(t *testing.T) {
	c := config.New(
		config.WithRootPrefix("/mnt/root"),
		config.WithUpdateEFIVars(true),
		config.WithImageMode(true),
		config.WithCanMount(true),
		config.WithTestFSType("vfat"),
		config.WithBootvarTestMode(true),
	)

	if c.Prefix() != "/mnt/root" {
		t.Errorf("Prefix() = %q, want /mnt/root", c.Prefix())
	}
	if !c.UpdateEFIVars() || !c.ImageMode() || !c.CanMount() || !c.BootvarTestMode() {
		t.Error("expected all flags to be true")
	}
	if c.TestFSType() != "vfat" {
		t.Errorf("TestFSType() = %q, want vfat", c.TestFSType())
	}
}
