package config

import (
	"fmt"
	"strconv"
	"strings"
)

// envSetter applies one environment variable to a Config.
type envSetter func(cfg *Config, value string) error

// envMapping maps environment variables (without prefix) to settings.
var envMapping = map[string]envSetter{
	"LOG_LEVEL": func(cfg *Config, v string) error {
		cfg.Logging.Level = strings.ToLower(v)
		return nil
	},
	"CLIPBOARD_CAPACITY": intSetter(func(cfg *Config) *int { return &cfg.Clipboard.Capacity }),
	"CLIPBOARD_SYSTEM":   boolSetter(func(cfg *Config) *bool { return &cfg.Clipboard.System }),
	"HIGHLIGHT_ENABLED":  boolSetter(func(cfg *Config) *bool { return &cfg.Highlight.Enabled }),
	"WORD_SEPARATORS": func(cfg *Config, v string) error {
		cfg.Highlight.WordSeparators = v
		return nil
	},
	"HIGHLIGHT_THEME_SELECTOR": func(cfg *Config, v string) error {
		cfg.Highlight.ThemeSelector = v
		return nil
	},
	"HIGHLIGHT_INTERVAL_MS":     intSetter(func(cfg *Config) *int { return &cfg.Highlight.IntervalMS }),
	"NAVIGATION_CAPACITY":       intSetter(func(cfg *Config) *int { return &cfg.Navigation.Capacity }),
	"NAVIGATION_LINE_THRESHOLD": intSetter(func(cfg *Config) *int { return &cfg.Navigation.LineThreshold }),
	"NAVIGATION_FORGET_CLOSED":  boolSetter(func(cfg *Config) *bool { return &cfg.Navigation.ForgetClosedWindows }),
}

// EnvVars returns the names of all recognized environment variables.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, EnvPrefix+name)
	}
	return names
}

// applyEnv overrides cfg with every set EDKIT_* variable.
// Empty values are treated as set.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for name, set := range envMapping {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
	}
	return nil
}

func intSetter(field func(*Config) *int) envSetter {
	return func(cfg *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidConfig, v)
		}
		*field(cfg) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) envSetter {
	return func(cfg *Config, v string) error {
		b, ok := parseBool(v)
		if !ok {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidConfig, v)
		}
		*field(cfg) = b
		return nil
	}
}

// parseBool accepts the spellings people use in shells.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	default:
		return false, false
	}
}
