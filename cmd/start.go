package cmd

import (
	"log/slog"

	"github.com/connorhough/tock/internal/config"
	"github.com/connorhough/tock/internal/countdown"
	"github.com/connorhough/tock/internal/iostreams"
	"github.com/connorhough/tock/internal/session"
	"github.com/spf13/cobra"
)

// newStreams is swapped out by tests
var newStreams = iostreams.NewIOStreams

func newStartCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a countdown",
		Long: `Count down from the configured duration, printing each tick.

While it runs, type a command and press Enter:
  p          pause
  r          resume from where it was paused
  s          restart from the full duration
  f <format> change the display format (mm:ss, m:s, ss:mm, s:m, mm, m, ss, s)
  b          move ticking to a background worker
  q          quit

Values come from the config file (optionally through --preset) and are
overridden by any flag given explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ResolveTimerConfig(preset)
			if err != nil {
				return err
			}
			if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
				return err
			}

			slog.Debug("resolved countdown config",
				"preset", preset, "minutes", cfg.Minutes, "seconds", cfg.Seconds,
				"interval", cfg.Interval, "format", cfg.Format, "background", cfg.Background)

			streams := newStreams()
			streams.Out = cmd.OutOrStdout()
			streams.ErrOut = cmd.ErrOrStderr()
			streams.In = cmd.InOrStdin()

			return session.Run(cmd.Context(), streams, session.Options{
				Minutes:    cfg.Minutes,
				Seconds:    cfg.Seconds,
				Interval:   cfg.Interval,
				Format:     cfg.Format,
				Background: cfg.Background,
			})
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Named preset from the config file (e.g., 'pomodoro')")
	cmd.Flags().Int(config.KeyMinutes, 1, "Minutes to count down from")
	cmd.Flags().Int(config.KeySeconds, 0, "Seconds to count down from")
	cmd.Flags().Duration(config.KeyInterval, countdown.DefaultInterval, "Time between ticks")
	cmd.Flags().Var(newPatternValue(countdown.DefaultPattern), config.KeyFormat, "Display format")
	cmd.Flags().Bool(config.KeyBackground, false, "Tick on a background worker")

	return cmd
}
