package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/sys/unix"

	"github.com/clearlinux/cbm/pkg/kernel"
)

// runningKernelIdentity reads the running kernel's uname release string
// and parses it through the kernel identity grammar (spec §4.1). Hosts
// whose running kernel was not installed by this tool (most of them, in
// practice) will fail to parse; report-booted then refuses cleanly
// rather than guessing.
func runningKernelIdentity() (kernel.SystemKernel, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return kernel.SystemKernel{}, fmt.Errorf("uname: %w", err)
	}
	release := unix.ByteSliceToString(uts.Release[:])
	return kernel.Parse(release)
}

func reportBootedCmd() *cli.Command {
	return &cli.Command{
		Name:  "report-booted",
		Usage: "mark the running kernel as successfully booted",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			running, err := runningKernelIdentity()
			if err != nil {
				return fmt.Errorf("could not determine running kernel identity: %w", err)
			}

			m, err := bindManager(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			kernels, err := m.ListKernels()
			if err != nil {
				return err
			}
			for _, k := range kernels {
				if k.Meta == running {
					return m.ReportBooted(k)
				}
			}
			return fmt.Errorf("running kernel %s is not among the discovered kernels", running)
		},
	}
}
