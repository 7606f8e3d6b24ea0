package looper

import (
	"sync"
	"time"
)

// Token identifies a callback registered with a Scheduler. Zero is never issued.
type Token uint64

// Scheduler runs callbacks after a relative delay on some execution queue.
type Scheduler interface {
	// ScheduleAfter registers fn to run once d has elapsed. A non-positive d
	// queues fn right away.
	ScheduleAfter(d time.Duration, fn func()) Token

	// Cancel prevents a not-yet-run callback from running. It returns the
	// delay that was left before it was due, and false if the token already
	// ran or was cancelled.
	Cancel(tok Token) (time.Duration, bool)
}

// Handler is a Scheduler that delivers callbacks on a Looper.
type Handler struct {
	looper *Looper
	clock  Clock

	mu      sync.Mutex
	lastID  Token
	pending map[Token]*entry
}

type entry struct {
	due  time.Time
	stop Stopper
}

var _ Scheduler = (*Handler)(nil)

// NewHandler binds a Handler to l. A nil clock means SystemClock.
func NewHandler(l *Looper, clock Clock) *Handler {
	if clock == nil {
		clock = SystemClock
	}
	return &Handler{
		looper:  l,
		clock:   clock,
		pending: make(map[Token]*entry),
	}
}

// Looper returns the queue callbacks are delivered on.
func (h *Handler) Looper() *Looper {
	return h.looper
}

// ScheduleAfter arms a clock timer that posts fn to the looper once d elapses.
func (h *Handler) ScheduleAfter(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastID++
	tok := h.lastID
	e := &entry{due: h.clock.Now().Add(d)}
	h.pending[tok] = e

	run := func() {
		if h.take(tok) {
			fn()
		}
	}

	if d == 0 {
		if !h.looper.Post(run) {
			delete(h.pending, tok)
		}
		return tok
	}

	e.stop = h.clock.AfterFunc(d, func() {
		if !h.looper.Post(run) {
			h.take(tok)
		}
	})
	return tok
}

// Cancel unregisters tok. A callback already posted but not yet run is skipped.
func (h *Handler) Cancel(tok Token) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.pending[tok]
	if !ok {
		return 0, false
	}
	delete(h.pending, tok)

	if e.stop != nil {
		e.stop.Stop()
	}

	remaining := e.due.Sub(h.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// Pending returns the number of callbacks registered but not yet run or cancelled.
func (h *Handler) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

func (h *Handler) take(tok Token) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.pending[tok]; !ok {
		return false
	}
	delete(h.pending, tok)
	return true
}
