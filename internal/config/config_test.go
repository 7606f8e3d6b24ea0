package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newStartFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("start", pflag.ContinueOnError)
	flags.Int(KeyMinutes, 0, "")
	flags.Int(KeySeconds, 0, "")
	flags.Duration(KeyInterval, 0, "")
	flags.String(KeyFormat, "", "")
	flags.Bool(KeyBackground, false, "")
	return flags
}

func TestApplyFlags(t *testing.T) {
	base := TimerConfig{Minutes: 25, Seconds: 0, Interval: time.Second, Format: "mm:ss"}

	tests := []struct {
		name string
		args []string
		want TimerConfig
	}{
		{
			name: "no flags keep config",
			args: nil,
			want: base,
		},
		{
			name: "explicit zero overrides",
			args: []string{"--minutes", "0", "--seconds", "45"},
			want: TimerConfig{Minutes: 0, Seconds: 45, Interval: time.Second, Format: "mm:ss"},
		},
		{
			name: "interval and format",
			args: []string{"--interval", "250ms", "--format", "ss"},
			want: TimerConfig{Minutes: 25, Interval: 250 * time.Millisecond, Format: "ss"},
		},
		{
			name: "background",
			args: []string{"--background"},
			want: TimerConfig{Minutes: 25, Interval: time.Second, Format: "mm:ss", Background: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := newStartFlags()
			if err := flags.Parse(tt.args); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			cfg := base
			if err := cfg.ApplyFlags(flags); err != nil {
				t.Fatalf("ApplyFlags failed: %v", err)
			}
			if cfg != tt.want {
				t.Errorf("got %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestResolveTimerConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	configContent := `
minutes: 2
seconds: 30
interval: 1s
format: mm:ss

presets:
  pomodoro:
    minutes: 25
    seconds: 0
  sprint:
    seconds: 10
    interval: 500ms
    format: ss
    background: true
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("failed to read config: %v", err)
	}

	tests := []struct {
		name   string
		preset string
		want   TimerConfig
	}{
		{
			name: "global settings",
			want: TimerConfig{Minutes: 2, Seconds: 30, Interval: time.Second, Format: "mm:ss"},
		},
		{
			name:   "preset overrides duration only",
			preset: "pomodoro",
			want:   TimerConfig{Minutes: 25, Seconds: 0, Interval: time.Second, Format: "mm:ss"},
		},
		{
			name:   "preset inherits global minutes",
			preset: "sprint",
			want:   TimerConfig{Minutes: 2, Seconds: 10, Interval: 500 * time.Millisecond, Format: "ss", Background: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ResolveTimerConfig(tt.preset)
			if err != nil {
				t.Fatalf("ResolveTimerConfig failed: %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("got %+v, want %+v", *cfg, tt.want)
			}
		})
	}

	if _, err := ResolveTimerConfig("missing"); err == nil {
		t.Error("expected error for unknown preset")
	} else if err.Error() != "preset 'missing' not found in configuration" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResolveTimerConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := ResolveTimerConfig("")
	if err != nil {
		t.Fatalf("ResolveTimerConfig failed: %v", err)
	}
	want := TimerConfig{Minutes: 1, Interval: time.Second, Format: "mm:ss"}
	if *cfg != want {
		t.Errorf("got %+v, want %+v", *cfg, want)
	}
}

func TestGetSetValue(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if _, err := EnsureConfigExists(configFile); err != nil {
		t.Fatalf("EnsureConfigExists failed: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := SetValue(KeyFormat, "ss"); err == nil {
		t.Error("expected SetValue to fail without a loaded config file")
	}

	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("failed to read config: %v", err)
	}

	if err := SetValue(KeyFormat, "m:s"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	viper.Reset()
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("failed to re-read config: %v", err)
	}

	got, err := GetValue(KeyFormat)
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if got != "m:s" {
		t.Errorf("format: got %q, want %q", got, "m:s")
	}

	if _, err := GetValue("no_such_key"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{value: "debug", want: slog.LevelDebug},
		{value: "WARN", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "", want: slog.LevelInfo},
		{value: "chatty", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			viper.Set(KeyLogLevel, tt.value)

			if got := LogLevel(); got != tt.want {
				t.Errorf("LogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath failed: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "tock", "config.yaml"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
