package eventloop

import (
	"sync"
	"time"
)

type timer struct {
	loop *Loop
	fn   TimerFunc

	mu      sync.Mutex
	gen     uint64
	t       *time.Timer
	pending bool
}

func (t *timer) Schedule(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.disarm()
	t.pending = true
	gen := t.gen
	t.t = time.AfterFunc(d, func() {
		t.loop.enqueue(func() error { return t.fire(gen) })
	})
}

func (t *timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarm()
}

func (t *timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// disarm invalidates the current schedule. Callers hold mu.
func (t *timer) disarm() {
	t.gen++
	t.pending = false
	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
}

// fire runs on the loop goroutine.
func (t *timer) fire(gen uint64) error {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return nil
	}
	t.pending = false
	t.t = nil
	t.mu.Unlock()

	return t.fn()
}
