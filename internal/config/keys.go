package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownKey is returned for a dot-notation key that does not exist.
var ErrUnknownKey = errors.New("unknown configuration key")

var envKeyReplacer = strings.NewReplacer(".", "_")

// setting describes one dot-notation configuration key.
type setting struct {
	value func(*Config) any
	set   func(*Config, string) error
}

var settings = map[string]setting{
	"timer.duration": {
		value: func(c *Config) any { return c.Timer.Duration.String() },
		set: func(c *Config, s string) error {
			d, err := time.ParseDuration(s)
			if err != nil {
				return fmt.Errorf("invalid duration for timer.duration: %w", err)
			}
			c.Timer.Duration = d
			return nil
		},
	},
	"tasks.backend": {
		value: func(c *Config) any { return c.Tasks.Backend },
		set: func(c *Config, s string) error {
			c.Tasks.Backend = s
			return nil
		},
	},
	"tui.alt_screen": {
		value: func(c *Config) any { return c.TUI.AltScreen },
		set: func(c *Config, s string) error {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("invalid boolean for tui.alt_screen: %w", err)
			}
			c.TUI.AltScreen = b
			return nil
		},
	},
	"log.level": {
		value: func(c *Config) any { return c.Log.Level },
		set: func(c *Config, s string) error {
			c.Log.Level = strings.ToLower(s)
			return nil
		},
	},
	"log.file": {
		value: func(c *Config) any { return c.Log.File },
		set: func(c *Config, s string) error {
			c.Log.File = s
			return nil
		},
	},
}

// Keys returns every configuration key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the typed value for a dot-notation key.
func Value(cfg *Config, key string) (any, error) {
	s, ok := settings[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return s.value(cfg), nil
}

// Get returns the display form of a dot-notation key.
func Get(cfg *Config, key string) (string, error) {
	v, err := Value(cfg, key)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok && s == "" {
		return "(not set)", nil
	}
	return fmt.Sprint(v), nil
}

// Set parses value into the field for key and re-validates the config.
// The config is left unchanged if either step fails.
func Set(cfg *Config, key, value string) error {
	s, ok := settings[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	next := *cfg
	if err := s.set(&next, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

// AsMap returns the configuration as nested maps keyed like the config file,
// with durations in their string form.
func AsMap(cfg *Config) map[string]any {
	out := make(map[string]any)
	for _, key := range Keys() {
		section, name, _ := strings.Cut(key, ".")
		m, ok := out[section].(map[string]any)
		if !ok {
			m = make(map[string]any)
			out[section] = m
		}
		m[name] = settings[key].value(cfg)
	}
	return out
}
