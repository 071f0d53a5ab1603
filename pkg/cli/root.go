package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"

	"github.com/clearlinux/cbm/pkg/blockprobe"
	"github.com/clearlinux/cbm/pkg/bootman"
	"github.com/clearlinux/cbm/pkg/config"
	"github.com/clearlinux/cbm/pkg/efivars"
)

var rootFlag = &cli.StringFlag{
	Name:       "root",
	Value:      "/",
	Persistent: true,
	Usage:      "root prefix the boot manager binds to",
}

var updateEFIVarsFlag = &cli.BoolFlag{
	Name:       "update-efi-vars",
	Persistent: true,
	Usage:      "update EFI boot variables after a successful write",
}

var metricsAddrFlag = &cli.StringFlag{
	Name:       "metrics-addr",
	Persistent: true,
	Usage:      "if set, serve Prometheus metrics on this address for the lifetime of the command",
}

var imageModeFlag = &cli.BoolFlag{
	Name:       "image-mode",
	Persistent: true,
	Usage:      "operate on an image being built rather than a running system",
}

var canMountFlag = &cli.BoolFlag{
	Name:       "can-mount",
	Persistent: true,
	Usage:      "allow the manager to mount filesystems during install/uninstall flows",
}

// Updater is the narrow capability pkg/cli invokes after a write the
// original tool followed with an implicit bootloader update (the
// `is_console_mode`/update flow described in SPEC_FULL.md §4). The
// concrete bootloader-copy strategy remains an external collaborator
// out of this module's scope (spec §1); NullUpdater satisfies the
// interface when no real updater is configured.
type Updater interface {
	Update(m *bootman.Manager) error
}

// NullUpdater performs no update. set-console-mode calls it directly
// after a successful write; pkg/cli has no hook for installing another
// Updater.
type NullUpdater struct{}

func (NullUpdater) Update(*bootman.Manager) error { return nil }

// Command builds the root cbm command tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "cbm",
		Usage: "reconcile installed kernels against the boot partition",
		Flags: []cli.Flag{rootFlag, updateEFIVarsFlag, metricsAddrFlag, imageModeFlag, canMountFlag},
		Commands: []*cli.Command{
			setConsoleModeCmd(),
			getConsoleModeCmd(),
			setTimeoutCmd(),
			getTimeoutCmd(),
			listKernelsCmd(),
			reportBootedCmd(),
			checkAllCmd(),
		},
	}
}

// bindManager constructs a Manager over the default capability
// implementations and binds it to the --root flag's value, applying the
// resolved Config (flags plus the CBM_TEST_FSTYPE/CBM_BOOTVAR_TEST_MODE
// env overrides, SPEC_FULL.md §2.3) and, if requested, serving
// --metrics-addr for the remaining lifetime of the process.
func bindManager(cmd *cli.Command) (*bootman.Manager, error) {
	cfg := config.New(
		config.WithRootPrefix(cmd.String("root")),
		config.WithUpdateEFIVars(cmd.Bool("update-efi-vars")),
		config.WithImageMode(cmd.Bool("image-mode")),
		config.WithCanMount(cmd.Bool("can-mount")),
		config.WithTestFSType(os.Getenv("CBM_TEST_FSTYPE")),
		config.WithBootvarTestMode(os.Getenv("CBM_BOOTVAR_TEST_MODE") == "yes"),
	)

	if cfg.BootvarTestMode() {
		slog.Warn("running with CBM_BOOTVAR_TEST_MODE=yes: block-probe and EFI variable access are simulated", "test_fstype", cfg.TestFSType())
	}

	m := bootman.New(blockprobe.NewForEnvironment(), efivars.NewForEnvironment("/sys", "/dev"))

	if !m.SetPrefix(cfg.Prefix()) {
		return nil, fmt.Errorf("failed to bind boot manager to root prefix %q", cfg.Prefix())
	}
	m.SetUpdateEFIVars(cfg.UpdateEFIVars())
	m.SetImageMode(cfg.ImageMode())
	m.SetCanMount(cfg.CanMount())

	if addr := cmd.String("metrics-addr"); addr != "" {
		serveMetrics(addr, m)
	}

	return m, nil
}

func serveMetrics(addr string, m *bootman.Manager) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.ListenAndServe() }()
}
