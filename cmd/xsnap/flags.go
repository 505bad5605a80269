package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/xsnap/pkg/config"
	"github.com/user/xsnap/pkg/ports"
)

func flags() []cli.Flag {
	// Translated at call time so the lexicon from init is in place.
	catCapture := l10n.T("Capture")
	catOutput := l10n.T("Output")
	catDelivery := l10n.T("Delivery")
	catDebug := l10n.T("Debug")
	catLogging := l10n.T("Logging")

	return []cli.Flag{
		// Capture
		&cli.BoolFlag{Name: "now", Usage: l10n.T("Capture immediately (default)"), Category: catCapture},
		&cli.BoolFlag{Name: "in5", Usage: l10n.T("Capture after 5 seconds"), Category: catCapture},
		&cli.BoolFlag{Name: "in10", Usage: l10n.T("Capture after 10 seconds"), Category: catCapture},
		&cli.Float64Flag{Name: "delay", Aliases: []string{"d"}, Usage: l10n.T("Capture after the given number of seconds"), Category: catCapture},
		&cli.BoolFlag{Name: "select", Aliases: []string{"s"}, Usage: l10n.T("Click the window to capture"), Category: catCapture},
		&cli.BoolFlag{Name: "active", Aliases: []string{"a"}, Usage: l10n.T("Capture the focused window"), Category: catCapture},
		&cli.StringFlag{Name: "display", Usage: l10n.T("X display to connect to"), EnvVars: []string{"DISPLAY"}, Category: catCapture},

		// Output
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output PNG path ({time} is replaced with the capture time)"), Category: catOutput},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: l10n.T("Row conversion workers (0 = number of CPUs)"), Category: catOutput},
		&cli.StringFlag{Name: "compression", Usage: l10n.T("Compression level: default, none, fast or best"), Category: catOutput},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("Config file (default: $XDG_CONFIG_HOME/xsnap/config.yaml)"), Category: catOutput},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown summary to this path"), Category: catOutput},

		// Delivery
		&cli.BoolFlag{Name: "no-clipboard", Usage: l10n.T("Do not copy the PNG to the clipboard"), Category: catDelivery},
		&cli.BoolFlag{Name: "no-notify", Usage: l10n.T("Do not show a desktop notification"), Category: catDelivery},

		// Debug
		&cli.BoolFlag{Name: "debug", Usage: l10n.T("Save intermediate results"), Category: catDebug},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output"), Category: catDebug},

		// Logging
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)"), Category: catLogging},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: catLogging},
	}
}

// buildConfig loads the config file and applies command-line overrides.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	// Delay flags are mutually exclusive.
	delays := 0
	for _, name := range []string{"now", "in5", "in10", "delay"} {
		if c.IsSet(name) {
			delays++
		}
	}
	if delays > 1 {
		return cfg, fmt.Errorf("--now, --in5, --in10 and --delay are mutually exclusive")
	}
	switch {
	case c.Bool("now"):
		cfg.DelaySec = 0
	case c.Bool("in5"):
		cfg.DelaySec = 5
	case c.Bool("in10"):
		cfg.DelaySec = 10
	case c.IsSet("delay"):
		cfg.DelaySec = c.Float64("delay")
	}

	if c.Bool("select") && c.Bool("active") {
		return cfg, fmt.Errorf("--select and --active are mutually exclusive")
	}
	switch {
	case c.Bool("select"):
		cfg.Mode = string(ports.ModeSelect)
	case c.Bool("active"):
		cfg.Mode = string(ports.ModeActive)
	}

	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("workers") {
		cfg.Encode.Workers = c.Int("workers")
	}
	if c.IsSet("compression") {
		cfg.Encode.Compression = c.String("compression")
	}
	if c.Bool("no-clipboard") {
		cfg.Clipboard.Enabled = false
	}
	if c.Bool("no-notify") {
		cfg.Notify.Enabled = false
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
