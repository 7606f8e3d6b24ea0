// Package session runs an interactive countdown on the terminal.
//
// The session owns the main looper: it drives it on the calling goroutine,
// prints every tick the timer reports, and turns lines read from stdin into
// timer operations posted to that same looper.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/connorhough/tock/internal/countdown"
	"github.com/connorhough/tock/internal/iostreams"
	"github.com/connorhough/tock/internal/looper"
	"golang.org/x/sync/errgroup"
)

const helpText = "commands: p pause, r resume, s restart, f <pattern> format, b background, q quit"

// Options configures a countdown session
type Options struct {
	Minutes    int
	Seconds    int
	Interval   time.Duration
	Format     string
	Background bool
}

type session struct {
	streams *iostreams.IOStreams
	timer   *countdown.Timer
	stop    context.CancelFunc

	mu      sync.Mutex
	redraw  bool
	midLine bool
}

// Run counts down per opts until the timer finishes, the user quits, or ctx
// is cancelled. Finishing or quitting returns nil; cancellation returns ctx.Err().
func Run(ctx context.Context, streams *iostreams.IOStreams, opts Options) error {
	main := looper.New("main")

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	s := &session{
		streams: streams,
		stop:    stop,
		redraw:  streams.CanRedraw(),
	}

	timer, err := countdown.New(opts.Minutes, opts.Seconds,
		countdown.ListenerFuncs{Tick: s.onTick, Finished: s.onFinished},
		countdown.WithInterval(opts.Interval),
		countdown.WithScheduler(looper.NewHandler(main, looper.SystemClock)),
		countdown.WithClock(looper.SystemClock),
	)
	if err != nil {
		return fmt.Errorf("invalid countdown: %w", err)
	}
	defer timer.Close()
	s.timer = timer

	if opts.Format != "" && !timer.SetFormat(opts.Format) {
		return fmt.Errorf("unsupported format '%s' (want one of %s)", opts.Format, countdown.PatternNames())
	}
	if opts.Background {
		timer.MoveToBackground()
	}

	slog.Debug("starting countdown session",
		"minutes", opts.Minutes, "seconds", opts.Seconds, "interval", timer.Interval(), "background", opts.Background)

	if streams.IsInteractive() {
		s.println(helpText)
	}
	timer.Start(false)

	g, gctx := errgroup.WithContext(runCtx)
	lines := readLines(gctx, streams.In)

	g.Go(func() error {
		return main.Loop(gctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				main.Post(func() { s.handle(line) })
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if ctx.Err() != nil {
		timer.Pause()
		s.println("Interrupted at " + timer.Display())
		return ctx.Err()
	}
	return nil
}

// readLines feeds r into a channel line by line. The goroutine may outlive
// the session while blocked on a read from a terminal.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Debug("stopped reading session commands", "error", err)
		}
	}()
	return lines
}

func (s *session) handle(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch strings.ToLower(fields[0]) {
	case "p", "pause":
		s.timer.Pause()
		s.println("Paused at " + s.timer.Display())
	case "r", "resume":
		s.timer.Start(true)
	case "s", "start", "restart":
		s.timer.Start(false)
	case "f", "format":
		if len(fields) < 2 {
			s.errorln("format needs a pattern: " + countdown.PatternNames())
			return
		}
		if !s.timer.SetFormat(fields[1]) {
			s.errorln(fmt.Sprintf("unsupported format '%s' (want one of %s)", fields[1], countdown.PatternNames()))
		}
	case "b", "background":
		s.timer.MoveToBackground()
		s.println("Ticking in the background")
	case "q", "quit":
		s.timer.Pause()
		s.stop()
	case "h", "help", "?":
		s.println(helpText)
	default:
		s.errorln(fmt.Sprintf("unknown command '%s' (%s)", fields[0], helpText))
	}
}

func (s *session) onTick(display string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.redraw {
		fmt.Fprintf(s.streams.Out, "\r%s", display)
		s.midLine = true
		return
	}
	fmt.Fprintln(s.streams.Out, display)
}

func (s *session) onFinished() {
	s.println("Finished!")
	s.stop()
}

func (s *session) println(msg string) {
	s.write(s.streams.Out, msg)
}

func (s *session) errorln(msg string) {
	s.write(s.streams.ErrOut, msg)
}

func (s *session) write(w io.Writer, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.midLine {
		fmt.Fprint(s.streams.Out, "\n")
		s.midLine = false
	}
	fmt.Fprintln(w, msg)
}
