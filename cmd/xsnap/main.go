// Package main provides the CLI entry point for xsnap.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/xsnap/pkg/adapters/dbusnotify"
	"github.com/user/xsnap/pkg/adapters/filesink"
	"github.com/user/xsnap/pkg/adapters/ggrenderer"
	"github.com/user/xsnap/pkg/adapters/logger"
	"github.com/user/xsnap/pkg/adapters/notifysend"
	"github.com/user/xsnap/pkg/adapters/nullsink"
	"github.com/user/xsnap/pkg/adapters/osfilesystem"
	"github.com/user/xsnap/pkg/adapters/x11capture"
	"github.com/user/xsnap/pkg/adapters/xclip"
	"github.com/user/xsnap/pkg/config"
	"github.com/user/xsnap/pkg/orchestrator"
	"github.com/user/xsnap/pkg/ports"
	"github.com/user/xsnap/pkg/stages/capture"
	"github.com/user/xsnap/pkg/stages/deliver"
	"github.com/user/xsnap/pkg/stages/encode"
	"github.com/user/xsnap/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 config.AppName,
		Usage:                l10n.T("Take screenshots of X11 screens and windows"),
		Description:          l10n.T("xsnap saves the screen, a clicked window or the focused window as a PNG file, copies it to the clipboard and shows a notification."),
		Version:              version,
		Flags:                flags(),
		Action:               run,
		HideHelpCommand:      true,
		EnableBashCompletion: true,
	}
}

// run executes a capture.
func run(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()

	capturer, err := x11capture.New(c.String("display"), log)
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer capturer.Close()

	var clipboard ports.Clipboard
	if cfg.Clipboard.Enabled {
		clipboard = xclip.New(cfg.Clipboard.Command, cfg.Clipboard.Selection)
	}
	notifier := newNotifier(cfg.Notify, log)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	captureStage := capture.New(capturer, log)
	encodeStage := encode.NewStage(fs, log)
	deliverStage := deliver.New(clipboard, notifier, ggrenderer.New(), fs, log)

	orch := orchestrator.New(captureStage, encodeStage, deliverStage, sink, log)

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		return err
	}

	if path := c.String("summary"); path != "" {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
		if err := writer.Write(path, buildSummary(cfg, result)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info("Summary written to %s", path)
	}

	return nil
}

// newNotifier returns nil when notifications are disabled. The D-Bus
// backend falls back to notify-send when no session bus is reachable.
func newNotifier(cfg config.NotifyConfig, log ports.Logger) ports.Notifier {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Backend == config.BackendDBus {
		n, err := dbusnotify.New(config.AppName)
		if err == nil {
			return n
		}
		log.Debug("D-Bus unavailable, using notify-send: %s", err)
	}
	return notifysend.New(config.AppName)
}

// buildSummary converts a run result for the Markdown summary.
func buildSummary(cfg config.Config, r orchestrator.RunResult) *summarizer.Summary {
	return summarizer.NewBuilder().
		WithCapture(summarizer.CaptureInfo{
			Mode:       string(r.Mode),
			Window:     r.Window,
			Bounds:     r.Bounds,
			Delay:      cfg.Delay(),
			CapturedAt: r.CapturedAt,
			DurationMs: r.CaptureMs,
		}).
		WithOutput(summarizer.OutputInfo{
			Path:     r.OutputPath,
			Width:    r.Width,
			Height:   r.Height,
			FileSize: r.FileSize,
			EncodeMs: r.EncodeMs,
		}).
		WithSettings(summarizer.Settings{
			Workers:     r.Workers,
			Compression: r.Compression,
			Filter:      r.Filter,
		}).
		WithDelivery(r.Copied, r.Notified, r.Warnings).
		Build()
}
