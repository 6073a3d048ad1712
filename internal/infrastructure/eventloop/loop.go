package eventloop

import (
	"context"
	"sync"
	"time"
)

// queueSize is the number of callbacks that can wait for the loop goroutine.
const queueSize = 64

// TimerFunc is run by the loop when a timer expires.
type TimerFunc func() error

// EventFunc is run by the loop when a watched source becomes ready.
// ready names the condition that fired (Read or Write).
type EventFunc func(ready Interest) error

// Interest selects the readiness conditions an Event watches.
type Interest uint8

// Interest flags.
const (
	// Read fires when the source signals inbound work.
	Read Interest = 1 << iota

	// Write fires when the source signals outbound work.
	Write

	// Persist keeps the event pending after it fires. Without it the event
	// fires once and must be added again.
	Persist
)

// Source is anything that signals readiness through channels.
// A nil channel never fires.
type Source interface {
	Readable() <-chan struct{}
	Writable() <-chan struct{}
}

// Timer is a one-shot timer whose callback runs on the loop goroutine.
type Timer interface {
	// Schedule arms the timer to fire after d, replacing any earlier schedule.
	Schedule(d time.Duration)

	// Cancel disarms the timer. A callback already queued is dropped.
	Cancel()

	// Pending reports whether the timer is armed.
	Pending() bool
}

// Event watches a Source for readiness.
type Event interface {
	// Add starts watching. Adding a pending event does nothing.
	Add()

	// Cancel stops watching. A callback already queued is dropped.
	Cancel()

	// Pending reports whether the event is being watched.
	Pending() bool
}

// Reactor creates timers and readiness events whose callbacks all run on
// one goroutine.
type Reactor interface {
	NewTimer(fn TimerFunc) Timer
	NewEvent(src Source, interest Interest, fn EventFunc) Event
}

// Loop is a Reactor that runs callbacks on the goroutine calling Run.
//
// Thread Safety:
//   - Timers and events may be created, scheduled and cancelled from any
//     goroutine. Their callbacks only ever run inside Run.
type Loop struct {
	queue chan func() error

	stopped  chan struct{}
	stopOnce sync.Once
}

var _ Reactor = (*Loop)(nil)

// New creates a loop. Callbacks queue up until Run is called.
func New() *Loop {
	return &Loop{
		queue:   make(chan func() error, queueSize),
		stopped: make(chan struct{}),
	}
}

// Run executes callbacks until ctx is done or a callback fails.
//
// Returns:
//   - nil: ctx was cancelled
//   - error: the first error returned by a callback
//
// A loop cannot be restarted after Run returns; timers and events created on
// it stop firing.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.queue:
			if err := fn(); err != nil {
				return err
			}
		}
	}
}

// Stopped is closed when Run returns.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.stopped) })
}

// enqueue hands fn to the loop goroutine. It reports false if the loop has
// stopped.
func (l *Loop) enqueue(fn func() error) bool {
	select {
	case l.queue <- fn:
		return true
	case <-l.stopped:
		return false
	}
}

// NewTimer creates a disarmed timer.
func (l *Loop) NewTimer(fn TimerFunc) Timer {
	return &timer{loop: l, fn: fn}
}

// NewEvent creates an event that is not yet watching src.
func (l *Loop) NewEvent(src Source, interest Interest, fn EventFunc) Event {
	return &event{loop: l, src: src, interest: interest, fn: fn}
}
