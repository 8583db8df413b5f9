// Package config loads edkit configuration.
//
// Configuration is layered, lowest priority first:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. EDKIT_* environment variables
//
// Keys missing from a layer keep the value of the layer below. A missing
// configuration file is not an error.
package config

import (
	"errors"
	"fmt"

	"github.com/dshills/edkit/internal/clipring"
	"github.com/dshills/edkit/internal/highlight"
	"github.com/dshills/edkit/internal/navhistory"
)

// Configuration errors.
var (
	// ErrInvalidConfig is returned when a value fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

// Config is the complete edkit configuration.
type Config struct {
	Clipboard  ClipboardConfig  `toml:"clipboard" yaml:"clipboard"`
	Highlight  HighlightConfig  `toml:"highlight" yaml:"highlight"`
	Navigation NavigationConfig `toml:"navigation" yaml:"navigation"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
}

// ClipboardConfig configures the clipboard history.
type ClipboardConfig struct {
	// Capacity is the maximum number of remembered entries.
	Capacity int `toml:"capacity" yaml:"capacity"`

	// System backs the driver's clipboard with the OS clipboard.
	System bool `toml:"system" yaml:"system"`
}

// HighlightConfig configures the current-word highlighter.
type HighlightConfig struct {
	Enabled        bool   `toml:"enabled" yaml:"enabled"`
	WordSeparators string `toml:"word_separators" yaml:"word_separators"`
	ThemeSelector  string `toml:"theme_selector" yaml:"theme_selector"`
	IntervalMS     int    `toml:"interval_ms" yaml:"interval_ms"`
}

// NavigationConfig configures the navigation history.
type NavigationConfig struct {
	Capacity      int `toml:"capacity" yaml:"capacity"`
	LineThreshold int `toml:"line_threshold" yaml:"line_threshold"`

	// ForgetClosedWindows drops a window's history when it closes.
	ForgetClosedWindows bool `toml:"forget_closed_windows" yaml:"forget_closed_windows"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	hl := highlight.DefaultOptions()
	return &Config{
		Clipboard: ClipboardConfig{
			Capacity: clipring.DefaultCapacity,
		},
		Highlight: HighlightConfig{
			Enabled:        true,
			WordSeparators: hl.WordSeparators,
			ThemeSelector:  hl.ThemeSelector,
			IntervalMS:     int(hl.Interval.Milliseconds()),
		},
		Navigation: NavigationConfig{
			Capacity:            navhistory.DefaultCapacity,
			LineThreshold:       navhistory.DefaultLineThreshold,
			ForgetClosedWindows: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.Clipboard.Capacity <= 0 {
		return fmt.Errorf("%w: clipboard.capacity must be positive, got %d", ErrInvalidConfig, c.Clipboard.Capacity)
	}
	if c.Highlight.IntervalMS <= 0 {
		return fmt.Errorf("%w: highlight.interval_ms must be positive, got %d", ErrInvalidConfig, c.Highlight.IntervalMS)
	}
	if c.Navigation.Capacity <= 0 {
		return fmt.Errorf("%w: navigation.capacity must be positive, got %d", ErrInvalidConfig, c.Navigation.Capacity)
	}
	if c.Navigation.LineThreshold < 0 {
		return fmt.Errorf("%w: navigation.line_threshold must not be negative, got %d", ErrInvalidConfig, c.Navigation.LineThreshold)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn or error, got %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// HighlightOptions converts the highlight section into highlighter options.
func (c *Config) HighlightOptions() highlight.Options {
	return highlight.Options{
		WordSeparators: c.Highlight.WordSeparators,
		ThemeSelector:  c.Highlight.ThemeSelector,
		Interval:       msToDuration(c.Highlight.IntervalMS),
	}
}
