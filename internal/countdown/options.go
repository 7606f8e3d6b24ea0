package countdown

import (
	"log/slog"
	"time"

	"github.com/connorhough/tock/internal/looper"
)

// DefaultInterval is the time between ticks when none, or a non-positive one, is given.
const DefaultInterval = time.Second

// Option configures a Timer
type Option func(*Options)

// Options holds the settings a Timer is built from
type Options struct {
	Interval  time.Duration
	Pattern   Pattern
	Scheduler looper.Scheduler
	Clock     looper.Clock
	Logger    *slog.Logger

	// Background creates the looper used by MoveToBackground.
	Background func(name string) *looper.Looper
}

// WithInterval sets the time between ticks
func WithInterval(d time.Duration) Option {
	return func(o *Options) {
		o.Interval = d
	}
}

// WithPattern sets the initial display pattern. Unknown patterns are ignored.
func WithPattern(p string) Option {
	return func(o *Options) {
		if parsed, ok := ParsePattern(p); ok {
			o.Pattern = parsed
		}
	}
}

// WithScheduler sets the execution queue used until MoveToBackground.
// Without it the timer schedules on looper.Main().
func WithScheduler(s looper.Scheduler) Option {
	return func(o *Options) {
		o.Scheduler = s
	}
}

// WithClock sets the clock used by the timer's own handlers
func WithClock(c looper.Clock) Option {
	return func(o *Options) {
		o.Clock = c
	}
}

// WithBackgroundFactory replaces looper.StartBackground for MoveToBackground
func WithBackgroundFactory(f func(name string) *looper.Looper) Option {
	return func(o *Options) {
		o.Background = f
	}
}

// WithLogger sets the logger for lifecycle events
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// BuildOptions applies opts over the defaults
func BuildOptions(opts []Option) *Options {
	options := &Options{
		Interval: DefaultInterval,
		Pattern:  DefaultPattern,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	if options.Clock == nil {
		options.Clock = looper.SystemClock
	}
	if options.Scheduler == nil {
		options.Scheduler = looper.NewHandler(looper.Main(), options.Clock)
	}
	if options.Background == nil {
		options.Background = looper.StartBackground
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return options
}
