// Package countdown implements a pausable countdown timer that reports each
// tick to a Listener until it reaches 0:00.
//
// Ticks are scheduled on a looper.Scheduler. A timer starts on the scheduler
// it was given (looper.Main() by default) and can be moved once to a
// dedicated background looper while it runs.
package countdown

import (
	"log/slog"
	"sync"
	"time"

	"github.com/connorhough/tock/internal/looper"
)

const backgroundLooperName = "countdown"

// Timer counts down from a fixed number of minutes and seconds.
// It is safe for concurrent use.
type Timer struct {
	listener      Listener
	logger        *slog.Logger
	clock         looper.Clock
	newBackground func(name string) *looper.Looper

	mu sync.Mutex

	totalMinutes int
	totalSeconds int
	minutes      int
	seconds      int
	interval     time.Duration
	pattern      Pattern
	finished     bool
	closed       bool

	scheduler  looper.Scheduler
	background *looper.Looper

	// pending is the one outstanding tick, zero when none is scheduled.
	// gen changes whenever that tick is superseded, so a callback that
	// already left the scheduler can tell it is stale.
	pending looper.Token
	gen     uint64

	// notice is the tick Start queued for the position it started from,
	// nil once delivered or superseded. It travels with pending.
	notice *startNotice
}

type startNotice struct {
	token   looper.Token
	display string
}

// New creates a timer counting down from minutes:seconds. It fails with
// ErrInvalidDuration when both are zero or negative.
func New(minutes, seconds int, l Listener, opts ...Option) (*Timer, error) {
	if minutes <= 0 && seconds <= 0 {
		return nil, &DurationError{Minutes: minutes, Seconds: seconds}
	}
	if l == nil {
		l = ListenerFuncs{}
	}

	o := BuildOptions(opts)
	t := &Timer{
		listener:      l,
		logger:        o.Logger,
		clock:         o.Clock,
		newBackground: o.Background,
		totalMinutes:  max(minutes, 0),
		totalSeconds:  seconds,
		interval:      o.Interval,
		pattern:       o.Pattern,
		scheduler:     o.Scheduler,
	}
	t.minutes, t.seconds = normalize(t.totalMinutes, t.totalSeconds)
	return t, nil
}

// normalize maps a configured duration onto a countdown position whose
// seconds lie in [0,59].
func normalize(minutes, seconds int) (int, int) {
	if minutes > 0 && seconds <= 0 {
		return minutes, 0
	}
	if seconds <= 0 || seconds > 59 {
		return minutes, 59
	}
	return minutes, seconds
}

// Start runs the countdown. With resume false it restarts from the full
// duration, even if already running or finished; with resume true it
// continues from where Pause left it. Unless the countdown has finished, a
// tick for the current position is queued right away; like the scheduled
// tick, it is dropped by Pause or a later Start and follows MoveToBackground.
func (t *Timer) Start(resume bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	t.cancelPendingLocked()
	if !resume {
		t.minutes, t.seconds = normalize(t.totalMinutes, t.totalSeconds)
		t.finished = false
	}
	if t.finished {
		return
	}

	display := Format(t.minutes, t.seconds, t.pattern)
	t.logger.Debug("countdown started", "resume", resume, "remaining", display)

	t.postNoticeLocked(&startNotice{display: display})
	t.scheduleTickLocked()
}

// Pause stops ticking. Remaining time is kept for Start(true).
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != 0 || t.notice != nil {
		t.logger.Debug("countdown paused", "remaining", Format(t.minutes, t.seconds, t.pattern))
	}
	t.cancelPendingLocked()
}

// SetFormat switches the display pattern. Unknown patterns are ignored and
// false is returned; the active pattern stays in effect.
func (t *Timer) SetFormat(pattern string) bool {
	p, ok := ParsePattern(pattern)
	if !ok {
		t.logger.Debug("ignoring unsupported countdown pattern", "pattern", pattern)
		return false
	}

	t.mu.Lock()
	t.pattern = p
	t.mu.Unlock()
	return true
}

// MoveToBackground moves tick scheduling and listener delivery to a
// dedicated background looper. Only the first call has any effect. A tick
// that is already scheduled keeps its deadline on the new looper.
func (t *Timer) MoveToBackground() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.background != nil || t.closed {
		return
	}

	l := t.newBackground(backgroundLooperName)
	old := t.scheduler
	t.scheduler = looper.NewHandler(l, t.clock)
	t.background = l

	// The start notice goes first so it stays ahead of the tick on the new queue.
	if n := t.notice; n != nil {
		if _, ok := old.Cancel(n.token); ok {
			t.postNoticeLocked(n)
		}
	}

	if t.pending == 0 {
		t.logger.Debug("countdown moved to background", "looper", l.Name())
		return
	}

	remaining, ok := old.Cancel(t.pending)
	if !ok {
		// The tick already left the old queue and is waiting on t.mu; it
		// will reschedule itself on the new one.
		t.logger.Debug("countdown moved to background", "looper", l.Name(), "tick", "in flight")
		return
	}

	t.gen++
	gen := t.gen
	t.pending = t.scheduler.ScheduleAfter(remaining, func() { t.tick(gen) })
	t.logger.Debug("countdown moved to background", "looper", l.Name(), "next_tick", remaining)
}

// Close pauses the timer and stops its background looper, if any. A closed
// timer ignores Start.
func (t *Timer) Close() {
	t.mu.Lock()
	t.cancelPendingLocked()
	t.closed = true
	bg := t.background
	t.mu.Unlock()

	if bg != nil {
		bg.Quit()
	}
}

// RemainingMinutes returns the minutes left at the current position.
func (t *Timer) RemainingMinutes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.minutes
}

// RemainingSeconds returns the seconds left at the current position, in [0,59].
func (t *Timer) RemainingSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

// Finished reports whether the countdown reached 0:00 since the last fresh Start.
func (t *Timer) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// Pattern returns the active display pattern.
func (t *Timer) Pattern() Pattern {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pattern
}

// Interval returns the time between ticks.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// InBackground reports whether MoveToBackground has taken effect.
func (t *Timer) InBackground() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.background != nil
}

// Display renders the remaining time in the active pattern.
func (t *Timer) Display() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Format(t.minutes, t.seconds, t.pattern)
}

func (t *Timer) scheduleTickLocked() {
	t.gen++
	gen := t.gen
	t.pending = t.scheduler.ScheduleAfter(t.interval, func() { t.tick(gen) })
}

func (t *Timer) postNoticeLocked(n *startNotice) {
	t.notice = n
	n.token = t.scheduler.ScheduleAfter(0, func() { t.deliverNotice(n) })
}

func (t *Timer) deliverNotice(n *startNotice) {
	t.mu.Lock()
	if t.notice != n {
		t.mu.Unlock()
		return
	}
	t.notice = nil
	t.mu.Unlock()

	t.listener.OnTick(n.display)
}

func (t *Timer) cancelPendingLocked() {
	if t.notice != nil {
		t.scheduler.Cancel(t.notice.token)
		t.notice = nil
	}
	if t.pending != 0 {
		t.scheduler.Cancel(t.pending)
		t.pending = 0
	}
	t.gen++
}

func (t *Timer) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.pending = 0

	t.seconds--

	// Reaching 0:00 ends the countdown before any borrow from minutes.
	if t.minutes == 0 && t.seconds == 0 {
		t.finished = true
		t.gen++
		t.mu.Unlock()

		t.logger.Debug("countdown finished")
		t.listener.OnFinished()
		return
	}

	if t.seconds < 0 && t.minutes > 0 {
		t.seconds = 59
		t.minutes--
	}

	display := Format(t.minutes, t.seconds, t.pattern)
	t.scheduleTickLocked()
	t.mu.Unlock()

	t.listener.OnTick(display)
}
