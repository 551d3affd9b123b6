package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/IWhitebird/tpdf-install/internal/artifact"
	"github.com/IWhitebird/tpdf-install/internal/config"
	"github.com/IWhitebird/tpdf-install/internal/install"
	"github.com/IWhitebird/tpdf-install/internal/logger"
	"github.com/IWhitebird/tpdf-install/internal/platform"
	"github.com/IWhitebird/tpdf-install/internal/release"
	"github.com/IWhitebird/tpdf-install/internal/shellenv"
	"github.com/IWhitebird/tpdf-install/internal/version"
)

var (
	configPath string
	installDir string
	repository string
	pinnedTag  string
	gpgKeyFile string
	noVerify   bool
	timeout    time.Duration
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "tpdf-install",
		Short: "Download and install the latest tpdf release",
		Long: "tpdf-install identifies the machine's OS and architecture, resolves the\n" +
			"newest published tpdf release, downloads the matching archive, and places\n" +
			"the executable in a user-local bin directory.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if level, ok := logger.ParseLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			applyFlagOverrides(cmd, cfg)

			return run(ctx, cfg)
		},
	}
)

func init() {
	version.AttachCobraVersionCommand(rootCmd)

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to optional YAML settings file")
	flags.StringVarP(&installDir, "install-dir", "d", "", "install directory (default ~/.local/bin, or $"+config.EnvInstallDir+")")
	flags.StringVar(&repository, "repo", "", "release repository, owner/name (default "+config.DefaultRepository+")")
	flags.StringVar(&pinnedTag, "tag", "", "install this release tag instead of resolving the latest")
	flags.StringVar(&gpgKeyFile, "gpg-key-file", "", "armored public key; require a matching detached signature")
	flags.BoolVar(&noVerify, "no-verify", false, "skip checksum verification")
	flags.DurationVar(&timeout, "timeout", 0, "network timeout (default "+config.DefaultTimeout.String()+")")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// applyFlagOverrides layers explicitly set flags over the resolved settings.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("install-dir") {
		cfg.InstallDir = installDir
	}
	if cmd.Flags().Changed("repo") {
		cfg.Repository = repository
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeout
	}
	if cmd.Flags().Changed("gpg-key-file") {
		cfg.GPGKeyFile = gpgKeyFile
	}
	if noVerify {
		cfg.VerifyChecksum = false
	}
}

// run drives the five installation stages in order. Each stage either
// produces the input the next one needs or terminates the run.
func run(ctx context.Context, cfg *config.Config) error {
	tool := path.Base(cfg.Repository)

	plat, err := platform.Detect(ctx)
	if err != nil {
		return err
	}
	logstep(fmt.Sprintf("platform: %s", plat))

	tag := pinnedTag
	if tag == "" {
		resolver := release.NewResolver(&http.Client{Timeout: cfg.Timeout})
		tag, err = resolver.Latest(ctx, cfg.Repository)
		if err != nil {
			return err
		}
	}
	logstep(fmt.Sprintf("installing %s %s", tool, tag))

	ref := artifact.Locate(cfg.Repository, plat, tag, tool)
	logstep(fmt.Sprintf("downloading %s", ref.DownloadURL))

	target := install.Target{Dir: cfg.InstallDir, BinaryName: tool}
	pipeline := install.NewPipeline(cfg.Timeout)

	if err := pipeline.Run(ctx, ref, target, install.Options{
		VerifyChecksum: cfg.VerifyChecksum,
		GPGKeyFile:     cfg.GPGKeyFile,
	}); err != nil {
		return err
	}

	color.Green("installed %s %s to %s", tool, tag, target.Path())

	if advice := shellenv.Advise(cfg.InstallDir); advice != "" {
		fmt.Printf("\n%s is not on your PATH. Add it with:\n\n  %s\n\n", cfg.InstallDir, advice)
	}

	return nil
}

// logstep prints one user-facing status line.
func logstep(text string) {
	fmt.Println(
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}
