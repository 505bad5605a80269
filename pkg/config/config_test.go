package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/xsnap/pkg/pngenc"
	"github.com/user/xsnap/pkg/ports"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.OutputPath != "screenshot.png" {
		t.Errorf("expected screenshot.png, got %s", cfg.OutputPath)
	}
	if cfg.Mode != "screen" {
		t.Errorf("expected screen mode, got %s", cfg.Mode)
	}
	if !cfg.Clipboard.Enabled || cfg.Clipboard.Command != "xclip" || cfg.Clipboard.Selection != "clipboard" {
		t.Errorf("unexpected clipboard defaults %+v", cfg.Clipboard)
	}
	if !cfg.Notify.Enabled || cfg.Notify.Backend != BackendDBus {
		t.Errorf("unexpected notify defaults %+v", cfg.Notify)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
output: ~/Pictures/shot-{time}.png
mode: active
delay_sec: 2.5
clipboard:
  enabled: false
notify:
  backend: notify-send
  thumbnail_size: 64
encode:
  workers: 3
  compression: best
  filter: none
debug: true
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.OutputPath != "~/Pictures/shot-{time}.png" {
		t.Errorf("unexpected output %s", cfg.OutputPath)
	}
	if cfg.Mode != "active" || cfg.DelaySec != 2.5 {
		t.Errorf("unexpected capture settings %s %g", cfg.Mode, cfg.DelaySec)
	}
	if cfg.Clipboard.Enabled {
		t.Error("expected clipboard disabled")
	}
	if cfg.Clipboard.Command != "xclip" {
		t.Errorf("expected default command to survive, got %q", cfg.Clipboard.Command)
	}
	if cfg.Notify.Backend != BackendNotifySend || cfg.Notify.ThumbnailSize != 64 {
		t.Errorf("unexpected notify settings %+v", cfg.Notify)
	}
	if !cfg.Notify.Enabled || cfg.Notify.TimeoutMs != 5000 {
		t.Errorf("expected notify defaults to survive, got %+v", cfg.Notify)
	}
	if cfg.Encode.Workers != 3 || cfg.Encode.Compression != "best" || cfg.Encode.Filter != "none" {
		t.Errorf("unexpected encode settings %+v", cfg.Encode)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "mode: [unterminated\n")
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without a file failed: %v", err)
	}
	if cfg.Mode != "screen" {
		t.Errorf("expected defaults, got mode %s", cfg.Mode)
	}

	dir := filepath.Join(home, AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "mode: select\n")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != "select" {
		t.Errorf("expected mode from the default file, got %s", cfg.Mode)
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty output", func(c *Config) { c.OutputPath = "" }, "output"},
		{"bad mode", func(c *Config) { c.Mode = "region" }, "mode"},
		{"negative delay", func(c *Config) { c.DelaySec = -1 }, "delay"},
		{"negative workers", func(c *Config) { c.Encode.Workers = -2 }, "workers"},
		{"bad compression", func(c *Config) { c.Encode.Compression = "max" }, "compression"},
		{"bad filter", func(c *Config) { c.Encode.Filter = "paeth" }, "filter"},
		{"empty clipboard command", func(c *Config) { c.Clipboard.Command = "" }, "clipboard"},
		{"bad backend", func(c *Config) { c.Notify.Backend = "growl" }, "backend"},
		{"tiny thumbnail", func(c *Config) { c.Notify.ThumbnailSize = 2 }, "thumbnail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_DisabledSectionsAreNotChecked(t *testing.T) {
	cfg := Defaults()
	cfg.Clipboard.Enabled = false
	cfg.Clipboard.Command = ""
	cfg.Notify.Enabled = false
	cfg.Notify.Backend = "growl"

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected disabled sections to be ignored, got %v", err)
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "select"
	cfg.DelaySec = 1.5
	cfg.Encode.Workers = 6
	cfg.Encode.Compression = "fast"
	cfg.Encode.Filter = "none"
	cfg.Notify.ThumbnailPath = "/tmp/icon.png"

	oc := cfg.ToOrchestratorConfig()

	if oc.Mode != ports.ModeSelect {
		t.Errorf("expected select mode, got %s", oc.Mode)
	}
	if oc.Delay != 1500*time.Millisecond {
		t.Errorf("expected 1.5s delay, got %s", oc.Delay)
	}
	if oc.Workers != 6 || oc.Compression != pngenc.BestSpeed || oc.Filter != pngenc.FilterNone {
		t.Errorf("unexpected encoder settings %+v", oc)
	}
	if !oc.Clipboard || !oc.Notify || !oc.Thumbnail {
		t.Error("expected delivery enabled")
	}
	if oc.ThumbnailPath != "/tmp/icon.png" {
		t.Errorf("unexpected thumbnail path %s", oc.ThumbnailPath)
	}
}

func TestThumbnailPath_Default(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	got := Defaults().ThumbnailPath()
	want := filepath.Join(cache, AppName, "thumbnail.png")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestToOrchestratorConfig_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Defaults()
	cfg.OutputPath = "~/Pictures/{time}.png"

	got := cfg.ToOrchestratorConfig().OutputPath
	want := filepath.Join(home, "Pictures", "{time}.png")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
