package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/clearlinux/cbm/pkg/kernel"
)

var titleCaser = cases.Title(language.English)

func listKernelsCmd() *cli.Command {
	return &cli.Command{
		Name:  "list-kernels",
		Usage: "list discovered kernels, sorted by release ascending",
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

			printKernelTable(cmd, kernels.SortByReleaseAsc())
			return nil
		},
	}
}

func printKernelTable(cmd *cli.Command, kernels kernel.Collection) {
	w := tabwriter.NewWriter(cmd.Writer, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, h := range []string{"version", "ktype", "release", "default"} {
		fmt.Fprintf(w, "%s\t", titleCaser.String(h))
	}
	fmt.Fprintln(w)

	for _, k := range kernels {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t\n", k.Meta.Version, k.Meta.KType, k.Meta.Release, k.DefaultForType)
	}
}
