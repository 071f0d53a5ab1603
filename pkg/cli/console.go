package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/clearlinux/cbm/pkg/layout"
)

func setConsoleModeCmd() *cli.Command {
	return &cli.Command{
		Name:      "set-console-mode",
		Usage:     "set the bootloader console_mode fragment",
		ArgsUsage: "<value>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("set-console-mode requires exactly one argument")
			}
			value := cmd.Args().First()

			// is_console_mode allow-list check (spec §4.2, restored per
			// original_source/src/cli/ops/console_mode.c).
			if !layout.ConsoleModeValues[value] {
				return fmt.Errorf("%q is not a recognised console mode", value)
			}

			m, err := bindManager(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			var mode *string
			if value != "" {
				mode = &value
			}
			if err := m.SetConsoleMode(mode); err != nil {
				return err
			}

			return NullUpdater{}.Update(m)
		},
	}
}

func getConsoleModeCmd() *cli.Command {
	return &cli.Command{
		Name:  "get-console-mode",
		Usage: "print the current bootloader console_mode fragment",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := bindManager(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			mode, err := m.GetConsoleMode()
			if err != nil {
				return err
			}
			if mode == nil {
				fmt.Fprintln(cmd.Writer, "(unset)")
				return nil
			}
			fmt.Fprintln(cmd.Writer, *mode)
			return nil
		},
	}
}
