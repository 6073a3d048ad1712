// Package eventloop provides a small single-goroutine reactor.
//
// Timers and readiness events are armed from anywhere; their callbacks are
// queued and run one at a time by Loop.Run, so code driven by the loop needs
// no locking of its own.
//
//	loop := eventloop.New()
//	t := loop.NewTimer(func() error {
//	    log.Println("tick")
//	    return nil
//	})
//	t.Schedule(time.Second)
//	err := loop.Run(ctx)
//
// An Event watches a Source (a pair of readiness channels) for Read or Write.
// One-shot events fire once and must be added again; events created with
// Persist keep firing until cancelled. Adding an event that is already
// pending is a no-op. A callback that returns an error stops the loop, and
// Run returns that error.
package eventloop
