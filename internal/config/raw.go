package config

import (
	"time"
)

// RawConfig mirrors Config with optional fields so that only the keys present
// in a file override the defaults.
type RawConfig struct {
	Variant       *Variant       `yaml:"variant"`
	MinDisplay    *time.Duration `yaml:"min_display"`
	FrameInterval *time.Duration `yaml:"frame_interval"`
	Caption       *string        `yaml:"caption"`
	Title         *string        `yaml:"title"`
	Background    *string        `yaml:"background"`
	Display       *string        `yaml:"display"`
}

// apply copies every set field of r onto cfg.
func (r RawConfig) apply(cfg *Config) {
	if r.Variant != nil {
		cfg.Variant = *r.Variant
	}
	if r.MinDisplay != nil {
		cfg.MinDisplay = *r.MinDisplay
	}
	if r.FrameInterval != nil {
		cfg.FrameInterval = *r.FrameInterval
	}
	if r.Caption != nil {
		cfg.Caption = *r.Caption
	}
	if r.Title != nil {
		cfg.Title = *r.Title
	}
	if r.Background != nil {
		cfg.Background = *r.Background
	}
	if r.Display != nil {
		cfg.Display = *r.Display
	}
}
