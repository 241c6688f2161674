package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Variant != VariantRocket {
		t.Fatalf("expected default variant %q, got %q", VariantRocket, cfg.Variant)
	}
	if cfg.MinDisplay != 2*time.Second {
		t.Fatalf("expected default min_display 2s, got %v", cfg.MinDisplay)
	}
	if cfg.FrameInterval != 16*time.Millisecond {
		t.Fatalf("expected default frame_interval 16ms, got %v", cfg.FrameInterval)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *res.Config != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
	if res.File != path {
		t.Fatalf("expected file %q, got %q", path, res.File)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"variant: dots",
		"min_display: 3500ms",
		"frame_interval: 20ms",
		"caption: \"Starting editor\"",
		"title: Splash",
		"background: \"#000000\"",
		"display: \":1\"",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Variant != VariantDots {
		t.Fatalf("expected variant dots, got %q", cfg.Variant)
	}
	if cfg.MinDisplay != 3500*time.Millisecond {
		t.Fatalf("expected min_display 3.5s, got %v", cfg.MinDisplay)
	}
	if cfg.FrameInterval != 20*time.Millisecond {
		t.Fatalf("expected frame_interval 20ms, got %v", cfg.FrameInterval)
	}
	if cfg.Caption != "Starting editor" || cfg.Title != "Splash" {
		t.Fatalf("unexpected caption/title: %q/%q", cfg.Caption, cfg.Title)
	}
	if cfg.Display != ":1" {
		t.Fatalf("expected display :1, got %q", cfg.Display)
	}
	if bg := cfg.BackgroundColor(); bg.R != 0 || bg.G != 0 || bg.B != 0 || bg.A != 0xff {
		t.Fatalf("expected opaque black background, got %+v", bg)
	}
}

func TestLoadFromPath_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := writeConfig(t, "caption: Hello\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Caption != "Hello" {
		t.Fatalf("expected caption Hello, got %q", res.Config.Caption)
	}
	if res.Config.Variant != VariantRocket || res.Config.MinDisplay != DefaultMinDisplay {
		t.Fatalf("expected untouched defaults, got %+v", res.Config)
	}
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "hotkey: Mod4-t\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func TestLoadFromPath_ValidationErrorCarriesLine(t *testing.T) {
	path := writeConfig(t, "caption: ok\nvariant: comet\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "variant" {
		t.Fatalf("expected path variant, got %q", verr.Path)
	}
	if verr.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Line)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix in %q", err.Error())
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	res, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if *res.Config != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
}

func TestLoad_ReadsXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "splash"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "splash", "config.yaml")
	if err := os.WriteFile(path, []byte("variant: dots\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != path || res.Config.Variant != VariantDots {
		t.Fatalf("expected dots from %q, got %q from %q", path, res.Config.Variant, res.File)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{name: "negative min display", mutate: func(c *Config) { c.MinDisplay = -time.Second }, path: "min_display"},
		{name: "zero frame interval", mutate: func(c *Config) { c.FrameInterval = 0 }, path: "frame_interval"},
		{name: "bad background", mutate: func(c *Config) { c.Background = "purple" }, path: "background"},
		{name: "empty variant", mutate: func(c *Config) { c.Variant = "" }, path: "variant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#331122")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.R != 0x33 || c.G != 0x11 || c.B != 0x22 || c.A != 0xff {
		t.Fatalf("unexpected color %+v", c)
	}
	for _, bad := range []string{"", "#12345", "#GGGGGG", "#1234567"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}
