// Package config provides configuration management functionality for tock.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys. The countdown keys double as flag names on `tock start`.
const (
	KeyMinutes    = "minutes"
	KeySeconds    = "seconds"
	KeyInterval   = "interval"
	KeyFormat     = "format"
	KeyBackground = "background"
	KeyLogLevel   = "log_level"
)

// SetDefaults registers the values used when neither config nor flags set a key
func SetDefaults() {
	viper.SetDefault(KeyMinutes, 1)
	viper.SetDefault(KeySeconds, 0)
	viper.SetDefault(KeyInterval, time.Second)
	viper.SetDefault(KeyFormat, "mm:ss")
	viper.SetDefault(KeyBackground, false)
	viper.SetDefault(KeyLogLevel, "info")
}

// DefaultConfigPath returns where `tock config init` writes the config file
func DefaultConfigPath() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "tock", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tock", "config.yaml"), nil
}

// GetValue retrieves a configuration value by key
func GetValue(key string) (string, error) {
	if !viper.IsSet(key) {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}
	return viper.GetString(key), nil
}

// SetValue sets a configuration value by key and persists it to the config file
func SetValue(key string, value string) error {
	viper.Set(key, value)
	if viper.ConfigFileUsed() == "" {
		return fmt.Errorf("no config file loaded; run 'tock config init' first")
	}
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// TimerConfig holds the settings a countdown is started with
type TimerConfig struct {
	Minutes    int
	Seconds    int
	Interval   time.Duration
	Format     string
	Background bool
}

// ResolveTimerConfig resolves countdown settings, optionally through a named preset
// Precedence: preset -> global config
// Flags are handled separately in command layer
func ResolveTimerConfig(preset string) (*TimerConfig, error) {
	presetKey := "presets." + preset
	if preset != "" && !viper.IsSet(presetKey) {
		return nil, fmt.Errorf("preset '%s' not found in configuration", preset)
	}

	lookup := func(key string) string {
		if preset != "" {
			if k := presetKey + "." + key; viper.IsSet(k) {
				return k
			}
		}
		return key
	}

	return &TimerConfig{
		Minutes:    viper.GetInt(lookup(KeyMinutes)),
		Seconds:    viper.GetInt(lookup(KeySeconds)),
		Interval:   viper.GetDuration(lookup(KeyInterval)),
		Format:     viper.GetString(lookup(KeyFormat)),
		Background: viper.GetBool(lookup(KeyBackground)),
	}, nil
}

// ApplyFlags applies flags the user explicitly set on top of the resolved config
func (c *TimerConfig) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed(KeyMinutes) {
		if c.Minutes, err = flags.GetInt(KeyMinutes); err != nil {
			return err
		}
	}
	if flags.Changed(KeySeconds) {
		if c.Seconds, err = flags.GetInt(KeySeconds); err != nil {
			return err
		}
	}
	if flags.Changed(KeyInterval) {
		if c.Interval, err = flags.GetDuration(KeyInterval); err != nil {
			return err
		}
	}
	if flags.Changed(KeyFormat) {
		c.Format = flags.Lookup(KeyFormat).Value.String()
	}
	if flags.Changed(KeyBackground) {
		if c.Background, err = flags.GetBool(KeyBackground); err != nil {
			return err
		}
	}
	return nil
}

// LogLevel returns the configured slog level, defaulting to info
func LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(viper.GetString(KeyLogLevel)))); err != nil {
		return slog.LevelInfo
	}
	return level
}
