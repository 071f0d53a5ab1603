package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
)

func setTimeoutCmd() *cli.Command {
	return &cli.Command{
		Name:      "set-timeout",
		Usage:     "set the bootloader menu timeout in seconds",
		ArgsUsage: "<n>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("set-timeout requires exactly one argument")
			}
			n, err := strconv.Atoi(cmd.Args().First())
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", cmd.Args().First(), err)
			}

			m, err := bindManager(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			return m.SetTimeout(n)
		},
	}
}

func getTimeoutCmd() *cli.Command {
	return &cli.Command{
		Name:  "get-timeout",
		Usage: "print the configured bootloader menu timeout, or -1 if unset",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := bindManager(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			n, err := m.GetTimeout()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Writer, n)
			return nil
		},
	}
}
