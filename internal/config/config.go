// Package config handles configuration loading and management for tasktimer.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable overrides, e.g. TASKTIMER_LOG_LEVEL.
const EnvPrefix = "TASKTIMER"

// ProjectConfigName is the file searched for in the current directory and its parents.
const ProjectConfigName = ".tasktimer.yaml"

// Task collection backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for tasktimer.
type Config struct {
	Timer TimerConfig `mapstructure:"timer"`
	Tasks TasksConfig `mapstructure:"tasks"`
	TUI   TUIConfig   `mapstructure:"tui"`
	Log   LogConfig   `mapstructure:"log"`
}

// TimerConfig holds countdown settings.
type TimerConfig struct {
	// Duration is the length of one countdown. Ticks are always one second apart.
	Duration time.Duration `mapstructure:"duration"`
}

// TasksConfig selects the task collection backend.
type TasksConfig struct {
	Backend string `mapstructure:"backend"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File receives log output. Empty discards logs while the TUI is running.
	File string `mapstructure:"file"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (TASKTIMER_TIMER_DURATION, TASKTIMER_LOG_LEVEL, ...)
// 2. Project config (.tasktimer.yaml in current directory or parent)
// 3. User config (~/.config/tasktimer/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := newViper()

	// Load user config from XDG path
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
		}
		if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return unmarshal(v)
}

// newViper returns a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Timer.Duration < time.Second {
		return fmt.Errorf("timer.duration must be at least 1s, got %s", c.Timer.Duration)
	}
	if c.Timer.Duration%time.Second != 0 {
		return fmt.Errorf("timer.duration must be whole seconds, got %s", c.Timer.Duration)
	}
	switch c.Tasks.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("tasks.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, c.Tasks.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	return SaveToPath(cfg, GetUserConfigPath())
}

// SaveToPath writes the configuration to path, creating parent directories.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	for _, key := range Keys() {
		value, err := Value(cfg, key)
		if err != nil {
			return err
		}
		v.Set(key, value)
	}

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("timer.duration", "25m")
	v.SetDefault("tasks.backend", BackendMemory)
	v.SetDefault("tui.alt_screen", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// getUserConfigDir returns the XDG config directory for tasktimer.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "tasktimer")
	}

	// Fall back to ~/.config/tasktimer
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "tasktimer")
	}
	return filepath.Join(home, ".config", "tasktimer")
}

// findProjectConfig searches for .tasktimer.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			Duration: 25 * time.Minute,
		},
		Tasks: TasksConfig{
			Backend: BackendMemory,
		},
		TUI: TUIConfig{
			AltScreen: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
