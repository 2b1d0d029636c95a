package reactors

import "golang.org/x/sync/errgroup"

// broadcast delivers messages, in order, to each channel in subscribers. Each
// subscriber is written to from its own goroutine so a slow or full channel
// only backpressures its own writer, not the others; broadcast itself still
// blocks the caller (the actor goroutine) until every subscriber has received
// every message, which is what makes the emission "blocking" per the
// subscriber fan-out design.
func (r *reactorImpl[S]) broadcast(subscribers map[ID]chan any, messages []any) {
	if len(messages) == 0 || len(subscribers) == 0 {
		return
	}

	var g errgroup.Group
	for id, ch := range subscribers {
		id, ch := id, ch
		g.Go(func() error {
			for _, msg := range messages {
				if !r.sendOrDetectClose(id, ch, msg) {
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	r.metrics.emitObserve(len(messages))
}

// sendOrDetectClose writes msg to ch, recovering from a send-on-closed-channel
// panic. A panic is treated as the subscriber-side close-watcher: it enqueues
// a remove-subscribers control action for id and reports false so the caller
// stops writing further messages to this channel. This is the practical
// translation of a close-observable channel when the reactor only ever
// writes to it: detection is tied to the next attempted send, the same way
// a closed core.async channel fails the next put.
func (r *reactorImpl[S]) sendOrDetectClose(id ID, ch chan any, msg any) (sent bool) {
	defer func() {
		if rec := recover(); rec != nil {
			sent = false
			r.removeSubscribersAsync(id)
		}
	}()
	ch <- msg
	return true
}

func closeAnyChan(ch chan any) {
	defer func() { _ = recover() }()
	close(ch)
}
