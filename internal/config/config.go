package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Variant names the animation drawn on the splash window.
type Variant string

const (
	VariantRocket Variant = "rocket" // Rocket ascent with flame and motion lines.
	VariantDots   Variant = "dots"   // Ring of chasing dots.
)

const (
	DefaultMinDisplay    = 2 * time.Second
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultCaption       = "Launching your game"
	DefaultTitle         = "Loading..."
	DefaultBackground    = "#331122"
)

// Config is the effective splash configuration.
type Config struct {
	Variant       Variant       `yaml:"variant"`
	MinDisplay    time.Duration `yaml:"min_display"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Caption       string        `yaml:"caption"`
	Title         string        `yaml:"title"`
	Background    string        `yaml:"background"`
	// Display overrides $DISPLAY for the X11 backend. Empty means inherit.
	Display string `yaml:"display,omitempty"`
}

// DefaultConfig returns the configuration used when no file or flag overrides
// anything.
func DefaultConfig() *Config {
	return &Config{
		Variant:       VariantRocket,
		MinDisplay:    DefaultMinDisplay,
		FrameInterval: DefaultFrameInterval,
		Caption:       DefaultCaption,
		Title:         DefaultTitle,
		Background:    DefaultBackground,
	}
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Path string
	File string
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validate checks the configuration for values the launcher cannot use.
func (c *Config) Validate() error {
	switch c.Variant {
	case VariantRocket, VariantDots:
	default:
		return &ValidationError{Path: "variant", Err: fmt.Errorf("variant must be one of: rocket, dots")}
	}
	if c.MinDisplay < 0 {
		return &ValidationError{Path: "min_display", Err: fmt.Errorf("min_display must be >= 0")}
	}
	if c.FrameInterval <= 0 {
		return &ValidationError{Path: "frame_interval", Err: fmt.Errorf("frame_interval must be > 0")}
	}
	if _, err := ParseColor(c.Background); err != nil {
		return &ValidationError{Path: "background", Err: err}
	}
	return nil
}

// BackgroundColor returns the parsed background colour. Validate must have
// succeeded first.
func (c *Config) BackgroundColor() color.RGBA {
	col, err := ParseColor(c.Background)
	if err != nil {
		col, _ = ParseColor(DefaultBackground)
	}
	return col
}

// ParseColor parses a "#RRGGBB" string into an opaque colour.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q must have the form #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q must have the form #RRGGBB", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
