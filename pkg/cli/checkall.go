package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/clearlinux/cbm/pkg/bootman"
	"github.com/clearlinux/cbm/pkg/esp"
	"github.com/clearlinux/cbm/pkg/kernel"
)

var dumpFlag = &cli.BoolFlag{
	Name:  "dump",
	Usage: "print the resolved snapshot as YAML instead of a table",
}

// snapshot is the diagnostic view of a bound Manager that --dump
// marshals to YAML (SPEC_FULL.md §3's optional --dump support).
type snapshot struct {
	Prefix        string           `yaml:"prefix"`
	Vendor        string           `yaml:"vendor"`
	ImageMode     bool             `yaml:"image_mode"`
	CanMount      bool             `yaml:"can_mount"`
	UpdateEFIVars bool             `yaml:"update_efi_vars"`
	RootDevice    string           `yaml:"root_device"`
	Kernels       []kernelSnapshot `yaml:"kernels"`
}

type kernelSnapshot struct {
	Version string `yaml:"version"`
	KType   string `yaml:"ktype"`
	Release int    `yaml:"release"`
	State   string `yaml:"state"`
	Default bool   `yaml:"default"`
}

func checkAllCmd() *cli.Command {
	return &cli.Command{
		Name:  "check-all",
		Usage: "classify every discovered kernel's install state against the boot partition",
		Flags: []cli.Flag{dumpFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := bindManager(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			kernels, err := m.ListKernels()
			if err != nil {
				return err
			}
			insp := esp.New(m.Prefix(), m.VendorPrefix(), m.Bootloader(), m)

			if cmd.Bool("dump") {
				return dumpSnapshot(cmd, m, insp, kernels)
			}

			printStateTable(cmd, insp, kernels)
			return nil
		},
	}
}

func dumpSnapshot(cmd *cli.Command, m *bootman.Manager, insp *esp.Inspector, kernels kernel.Collection) error {
	snap := snapshot{
		Prefix:        m.Prefix(),
		Vendor:        m.VendorPrefix(),
		ImageMode:     m.ImageMode(),
		CanMount:      m.CanMount(),
		UpdateEFIVars: m.UpdateEFIVars(),
		RootDevice:    m.RootDevice().Dev,
	}
	for _, k := range kernels {
		snap.Kernels = append(snap.Kernels, kernelSnapshot{
			Version: k.Meta.Version,
			KType:   k.Meta.KType,
			Release: k.Meta.Release,
			State:   insp.State(k).String(),
			Default: k.DefaultForType,
		})
	}

	out, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = cmd.Writer.Write(out)
	return err
}

func printStateTable(cmd *cli.Command, insp *esp.Inspector, kernels kernel.Collection) {
	for _, k := range kernels.SortByReleaseAsc() {
		fmt.Fprintf(cmd.Writer, "%s-%d.%s\t%s\n", k.Meta.Version, k.Meta.Release, k.Meta.KType, insp.State(k))
	}
}
