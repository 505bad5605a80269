// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/xsnap/pkg/orchestrator"
	"github.com/user/xsnap/pkg/pngenc"
	"github.com/user/xsnap/pkg/ports"
)

// AppName names the config and cache directories.
const AppName = "xsnap"

// Config represents the full configuration for xsnap.
type Config struct {
	// Capture
	OutputPath string  `yaml:"output"`
	Mode       string  `yaml:"mode"`
	DelaySec   float64 `yaml:"delay_sec"`

	Clipboard ClipboardConfig `yaml:"clipboard"`
	Notify    NotifyConfig    `yaml:"notify"`
	Encode    EncodeConfig    `yaml:"encode"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ClipboardConfig controls the xclip hand-off.
type ClipboardConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Command   string `yaml:"command"`
	Selection string `yaml:"selection"`
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Backend       string `yaml:"backend"` // dbus or notify-send
	TimeoutMs     int    `yaml:"timeout_ms"`
	Thumbnail     bool   `yaml:"thumbnail"`
	ThumbnailSize int    `yaml:"thumbnail_size"`
	ThumbnailPath string `yaml:"thumbnail_path"`
}

// EncodeConfig holds the PNG encoder settings.
type EncodeConfig struct {
	Workers     int    `yaml:"workers"`
	Compression string `yaml:"compression"`
	Filter      string `yaml:"filter"`
}

// Notification backends.
const (
	BackendDBus       = "dbus"
	BackendNotifySend = "notify-send"
)

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputPath: "screenshot.png",
		Mode:       string(ports.ModeScreen),

		Clipboard: ClipboardConfig{
			Enabled:   true,
			Command:   "xclip",
			Selection: "clipboard",
		},
		Notify: NotifyConfig{
			Enabled:       true,
			Backend:       BackendDBus,
			TimeoutMs:     5000,
			Thumbnail:     true,
			ThumbnailSize: 128,
		},
		Encode: EncodeConfig{
			Compression: "default",
			Filter:      "adaptive",
		},

		DebugDir: "./debug",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/xsnap/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// LoadFromFile loads configuration from a YAML file. Keys missing from
// the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Load reads path when it is given and must exist. With an empty path the
// default file is used if present, otherwise Defaults.
func Load(path string) (Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}

	def, err := DefaultPath()
	if err != nil {
		return Defaults(), nil
	}
	cfg, err := LoadFromFile(def)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("output path is empty")
	}
	if _, ok := ports.ParseCaptureMode(c.Mode); !ok {
		return fmt.Errorf("unknown mode %q (want screen, select or active)", c.Mode)
	}
	if c.DelaySec < 0 {
		return fmt.Errorf("delay must not be negative, got %g", c.DelaySec)
	}
	if c.Encode.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Encode.Workers)
	}
	if _, ok := pngenc.ParseCompressionLevel(c.Encode.Compression); !ok {
		return fmt.Errorf("unknown compression %q (want default, none, fast or best)", c.Encode.Compression)
	}
	if _, ok := pngenc.ParseFilterMode(c.Encode.Filter); !ok {
		return fmt.Errorf("unknown filter %q (want adaptive or none)", c.Encode.Filter)
	}
	if c.Clipboard.Enabled && c.Clipboard.Command == "" {
		return fmt.Errorf("clipboard command is empty")
	}
	if c.Notify.Enabled {
		switch c.Notify.Backend {
		case BackendDBus, BackendNotifySend:
		default:
			return fmt.Errorf("unknown notify backend %q (want dbus or notify-send)", c.Notify.Backend)
		}
		if c.Notify.Thumbnail && c.Notify.ThumbnailSize < 3 {
			return fmt.Errorf("thumbnail size must be at least 3, got %d", c.Notify.ThumbnailSize)
		}
	}
	return nil
}

// Delay returns DelaySec as a duration.
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelaySec * float64(time.Second))
}

// ThumbnailPath returns the configured icon path or one in the user cache.
func (c Config) ThumbnailPath() string {
	if c.Notify.ThumbnailPath != "" {
		return c.Notify.ThumbnailPath
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName, "thumbnail.png")
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
// Call Validate first; unparsable values fall back to defaults.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	mode, _ := ports.ParseCaptureMode(c.Mode)
	level, _ := pngenc.ParseCompressionLevel(c.Encode.Compression)
	filter, _ := pngenc.ParseFilterMode(c.Encode.Filter)

	return orchestrator.Config{
		Mode:  mode,
		Delay: c.Delay(),

		OutputPath:  expandHome(c.OutputPath),
		Workers:     c.Encode.Workers,
		Compression: level,
		Filter:      filter,

		Clipboard:       c.Clipboard.Enabled,
		Notify:          c.Notify.Enabled,
		NotifyTimeoutMs: c.Notify.TimeoutMs,
		Thumbnail:       c.Notify.Thumbnail,
		ThumbnailSize:   c.Notify.ThumbnailSize,
		ThumbnailPath:   c.ThumbnailPath(),
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
