// Package looper provides serial execution queues and a cancellable delayed
// scheduler bound to them.
//
// A Looper owns a FIFO of callbacks and runs them one at a time. Whoever calls
// Loop (or RunPending) is the execution context of that queue; a Handler
// schedules delayed callbacks onto it.
package looper

import (
	"context"
	"log/slog"
	"sync"
)

// Looper runs posted callbacks one at a time, in the order they were posted.
// Only one goroutine may drive a Looper at a time.
type Looper struct {
	name string

	mu     sync.Mutex
	queue  []func()
	closed bool

	wake     chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a Looper. Nothing runs until the caller drives it with Loop or RunPending.
func New(name string) *Looper {
	return &Looper{
		name: name,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

// StartBackground creates a Looper and runs it on a dedicated goroutine until Quit.
func StartBackground(name string) *Looper {
	l := New(name)
	go func() {
		_ = l.Loop(context.Background())
		slog.Debug("background looper stopped", "name", name)
	}()
	return l
}

var (
	mainOnce   sync.Once
	mainLooper *Looper
)

// Main returns the process-wide default Looper. The program decides which
// goroutine drives it; callbacks posted to it wait until someone does.
func Main() *Looper {
	mainOnce.Do(func() {
		mainLooper = New("main")
	})
	return mainLooper
}

func (l *Looper) Name() string {
	return l.name
}

// Post appends fn to the queue. It returns false if the Looper has quit.
func (l *Looper) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// RunPending runs queued callbacks on the calling goroutine until the queue is
// empty, including any posted while it runs. It returns how many ran.
func (l *Looper) RunPending() int {
	n := 0
	for {
		fn := l.next()
		if fn == nil {
			return n
		}
		fn()
		n++
	}
}

// Loop drives the queue until ctx is done or Quit is called.
func (l *Looper) Loop(ctx context.Context) error {
	for {
		l.RunPending()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return nil
		case <-l.wake:
		}
	}
}

// Quit stops Loop and drops anything still queued. Later posts are rejected.
func (l *Looper) Quit() {
	l.quitOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
		close(l.quit)
	})
}

func (l *Looper) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}
