package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/connorhough/tock/internal/iostreams"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

// executeCmd runs the root command with args against in-memory streams and
// an empty config home.
func executeCmd(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	cfgFile = ""
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(viper.Reset)

	origStreams := newStreams
	newStreams = func() *iostreams.IOStreams {
		streams, _, _ := iostreams.TestIOStreamsNonInteractive()
		return streams
	}
	t.Cleanup(func() { newStreams = origStreams })

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestStartCmd_Flags(t *testing.T) {
	out, err := executeCmd(t, "", "start", "--minutes", "0", "--seconds", "3", "--interval", "1ms")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	want := []string{"00:03", "00:02", "00:01", "Finished!"}
	if diff := cmp.Diff(want, lines(out)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStartCmd_Preset(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
minutes: 10
presets:
  quick:
    minutes: 0
    seconds: 2
    interval: 1ms
    format: s
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, err := executeCmd(t, "", "--config", configFile, "start", "--preset", "quick")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	want := []string{"2", "1", "Finished!"}
	if diff := cmp.Diff(want, lines(out)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStartCmd_FlagOverridesPreset(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
presets:
  quick:
    minutes: 0
    seconds: 30
    interval: 1ms
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, err := executeCmd(t, "", "--config", configFile, "start", "--preset", "quick", "--seconds", "1", "--format", "M:S")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	want := []string{"0:1", "Finished!"}
	if diff := cmp.Diff(want, lines(out)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStartCmd_Quit(t *testing.T) {
	out, err := executeCmd(t, "p\nq\n", "start", "--minutes", "2", "--interval", "1h")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	want := []string{"02:00", "Paused at 02:00"}
	if diff := cmp.Diff(want, lines(out)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStartCmd_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "zero duration",
			args:    []string{"start", "--minutes", "0", "--seconds", "0"},
			wantErr: "invalid countdown: countdown can't start from 0 minutes 0 seconds: invalid countdown duration",
		},
		{
			name:    "bad format",
			args:    []string{"start", "--format", "hh:mm"},
			wantErr: `invalid argument "hh:mm" for "--format" flag: unsupported format "hh:mm"`,
		},
		{
			name:    "unknown preset",
			args:    []string{"start", "--preset", "nope"},
			wantErr: "preset 'nope' not found in configuration",
		},
		{
			name:    "extra args",
			args:    []string{"start", "now"},
			wantErr: `unknown command "now" for "tock start"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
