package main

import (
	"context"
	"fmt"
	"os"

	"github.com/clearlinux/cbm/pkg/cli"
	"github.com/clearlinux/cbm/pkg/logging"
)

var (
	version = "dev"
)

func main() {
	logging.SetDefaultStructuredLoggerWithLevel("cbm", version, "info")

	if err := cli.Command().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
