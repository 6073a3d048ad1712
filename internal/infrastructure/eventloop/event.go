package eventloop

import "sync"

type event struct {
	loop     *Loop
	src      Source
	interest Interest
	fn       EventFunc

	mu      sync.Mutex
	gen     uint64
	pending bool
	cancel  chan struct{}
}

func (e *event) Add() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending {
		return
	}
	e.pending = true
	e.gen++
	e.cancel = make(chan struct{})
	go e.watch(e.gen, e.cancel)
}

func (e *event) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.pending {
		return
	}
	e.pending = false
	e.gen++
	close(e.cancel)
	e.cancel = nil
}

func (e *event) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// watch waits for readiness and queues the callback. A persistent event
// waits for its callback to finish before watching again.
func (e *event) watch(gen uint64, cancel <-chan struct{}) {
	persist := e.interest&Persist != 0

	for {
		var readable, writable <-chan struct{}
		if e.interest&Read != 0 {
			readable = e.src.Readable()
		}
		if e.interest&Write != 0 {
			writable = e.src.Writable()
		}

		var ready Interest
		select {
		case <-cancel:
			return
		case <-e.loop.stopped:
			return
		case <-readable:
			ready = Read
		case <-writable:
			ready = Write
		}

		done := make(chan struct{})
		queued := e.loop.enqueue(func() error {
			defer close(done)
			return e.fire(gen, ready)
		})
		if !queued || !persist {
			return
		}

		select {
		case <-done:
		case <-cancel:
			return
		case <-e.loop.stopped:
			return
		}
	}
}

// fire runs on the loop goroutine.
func (e *event) fire(gen uint64, ready Interest) error {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return nil
	}
	if e.interest&Persist == 0 {
		e.pending = false
	}
	e.mu.Unlock()

	return e.fn(ready)
}
