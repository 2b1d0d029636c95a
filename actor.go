package reactors

import (
	"fmt"
)

// submitNonBlocking enqueues a onto the current non-blocking queue. If a
// reboot swaps the queue out while the send is pending, the generation
// channel closing wakes the select and the send is retried against the new
// queue — this is what lets publisher pumps and public API calls keep
// working across a restart without holding a stale queue reference.
func (r *reactorImpl[S]) submitNonBlocking(a action[S]) {
	r.submit(a, false)
}

func (r *reactorImpl[S]) submitBlocking(a action[S]) {
	r.submit(a, true)
}

func (r *reactorImpl[S]) submit(a action[S], blocking bool) {
	if r.imploded() {
		return
	}
	for {
		r.genMu.RLock()
		q := r.nonBlock
		if blocking {
			q = r.block
		}
		gen := r.generation
		r.genMu.RUnlock()

		r.aw.submitted()
		if r.sendToGeneration(q, gen, a) {
			return
		}
		r.aw.completed()
		if r.imploded() {
			return
		}
	}
}

// sendToGeneration delivers a to q, the queue captured for the incarnation
// identified by gen. It reports false once that incarnation has been
// retired, either because gen closed or because the send itself panicked.
//
// The panic case closes a gap the gen channel alone cannot: a caller can
// read q and gen under genMu.RLock just before supervisor.go drains and
// retires that same queue. By the time this goroutine reaches the select
// below, q's buffer may have room again and gen may already be closed, and
// select is free to pick either ready case — including the send, which
// would silently deposit the action into an incarnation nobody will ever
// read from again. supervisor.go closes a retired queue's channel (before
// draining it) and before swapping in the replacement, so a send that wins
// that race lands on a closed channel and panics instead of succeeding;
// recovering it here and reporting false makes both paths equivalent: the
// caller retries against the current generation.
func (r *reactorImpl[S]) sendToGeneration(q *actionQueue[S], gen chan struct{}, a action[S]) (sent bool) {
	defer func() {
		if rec := recover(); rec != nil {
			sent = false
		}
	}()
	select {
	case q.ch <- a:
		return true
	case <-gen:
		return false
	}
}

// runIncarnation is the state actor's main loop for one incarnation: it owns
// record mutation exclusively until a fault ends the incarnation, at which
// point the supervisor builds a fresh pair of queues and starts the next one.
func (r *reactorImpl[S]) runIncarnation(nonBlock, block *actionQueue[S]) {
	for {
		var a action[S]
		select {
		case a = <-block.ch:
		default:
			select {
			case a = <-nonBlock.ch:
			case a = <-block.ch:
			}
		}

		before := r.snapshot()
		after, err := applyAction(a, before)
		if err != nil {
			r.aw.completed()
			r.logActor.Error().Err(err).Msg("action faulted")
			r.fault(err, stageFor(err))
			return
		}

		r.mu.Lock()
		r.current = after
		r.mu.Unlock()

		if werr := r.dispatchWatchSafe(before, after); werr != nil {
			r.aw.completed()
			r.logActor.Error().Err(werr).Msg("watch reaction faulted")
			r.fault(werr, StageEmitter)
			return
		}
		r.aw.completed()
	}
}

// dispatchWatchSafe runs dispatchWatch, recovering a panic raised by a
// caller-supplied emitter invoked from a watch reaction (SUBSCRIBERS_ON_START,
// SUBSCRIBERS_ON_CHANGE, STATE_CHANGE all call it) and reporting it as an
// emitter-stage fault instead of letting it crash the actor goroutine.
func (r *reactorImpl[S]) dispatchWatchSafe(before, after *record[S]) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newFaultError(panicToError(rec), StageEmitter, after.restarts)
		}
	}()
	r.dispatchWatch(before, after)
	return nil
}

// applyAction runs a, recovering from a panic raised inside caller-supplied
// code (reducer, initializer, Update functions) so a single bad callback
// faults the actor instead of crashing the process. Emitter panics happen
// during watch dispatch, outside a, and are recovered by dispatchWatchSafe.
func applyAction[S any](a action[S], before *record[S]) (after *record[S], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			after, err = nil, panicToError(rec)
		}
	}()
	return a(before)
}

func panicToError(rec any) error {
	if e, ok := rec.(error); ok {
		return e
	}
	return fmt.Errorf("reactors: panic: %v", rec)
}

func stageFor(err error) Stage {
	if stage, ok := ExtractFaultStage(err); ok {
		return stage
	}
	return StageReducer
}

// fault hands the faulted incarnation off to the supervisor and returns; the
// actor goroutine exits, and a new one is started (or implosion runs) from
// the supervisor goroutine.
func (r *reactorImpl[S]) fault(err error, stage Stage) {
	r.phase.Store(int32(phaseFaulted))
	r.metrics.faultInc(stage)
	go r.supervise(err, stage)
}

// --- public API -----------------------------------------------------------

func (r *reactorImpl[S]) Start() Reactor[S] {
	r.startOnce.Do(func() {
		r.phase.CompareAndSwap(int32(phaseCreated), int32(phaseRunning))
		r.submitBlocking(startAction[S]())
	})
	r.Await()
	return r
}

func (r *reactorImpl[S]) Await() Reactor[S] {
	r.aw.wait()
	return r
}

func (r *reactorImpl[S]) Update(f func(S) S) Reactor[S] {
	r.submitNonBlocking(updateAction(f))
	return r
}

func (r *reactorImpl[S]) UpdateBlocking(f func(S) S) Reactor[S] {
	r.submitBlocking(updateAction(f))
	return r
}

func (r *reactorImpl[S]) Reboot() Reactor[S] {
	r.submitBlocking(rebootAction[S]())
	return r
}

func (r *reactorImpl[S]) SetReducer(fn Reducer[S]) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.reducer = fn
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) SetEmitter(fn Emitter[S]) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.emitter = fn
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) SetInitializer(fn Initializer[S]) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.initializer = fn
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) SetBackoff(b Backoff) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.backoff = b
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) AddPublishers(chans map[ID]chan any) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.publishers = mergeChans(rec.publishers, chans)
		r.metrics.publisherGauge(len(next.publishers) - len(rec.publishers))
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) RemovePublishers(ids ...ID) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.publishers = withoutChans(rec.publishers, ids)
		r.metrics.publisherGauge(len(next.publishers) - len(rec.publishers))
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) AddSubscribers(chans map[ID]chan any) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.subscribers = mergeChans(rec.subscribers, chans)
		r.metrics.subscriberGauge(len(next.subscribers) - len(rec.subscribers))
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) RemoveSubscribers(ids ...ID) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.subscribers = withoutChans(rec.subscribers, ids)
		r.metrics.subscriberGauge(len(next.subscribers) - len(rec.subscribers))
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) AddDestructors(fns map[ID]func()) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		merged := make(map[ID]func(), len(rec.destructors)+len(fns))
		for id, fn := range rec.destructors {
			merged[id] = fn
		}
		for id, fn := range fns {
			merged[id] = fn
		}
		next.destructors = merged
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) RemoveDestructors(ids ...ID) Reactor[S] {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		merged := make(map[ID]func(), len(rec.destructors))
		drop := make(map[ID]struct{}, len(ids))
		for _, id := range ids {
			drop[id] = struct{}{}
		}
		for id, fn := range rec.destructors {
			if _, ok := drop[id]; ok {
				continue
			}
			merged[id] = fn
		}
		next.destructors = merged
		return next, nil
	})
	return r
}

func (r *reactorImpl[S]) removePublishersAsync(id ID) {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.publishers = withoutChans(rec.publishers, []ID{id})
		r.metrics.publisherGauge(len(next.publishers) - len(rec.publishers))
		return next, nil
	})
}

func (r *reactorImpl[S]) removeSubscribersAsync(id ID) {
	r.submitNonBlocking(func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.subscribers = withoutChans(rec.subscribers, []ID{id})
		r.metrics.subscriberGauge(len(next.subscribers) - len(rec.subscribers))
		return next, nil
	})
}

func startAction[S any]() action[S] {
	return func(rec *record[S]) (out *record[S], err error) {
		defer func() {
			if r := recover(); r != nil {
				out, err = nil, newFaultError(panicToError(r), StageInitializer, rec.restarts)
			}
		}()
		next := rec.clone()
		next.state = rec.initializer()
		next.started = true
		return next, nil
	}
}

// initAction is enqueued by the supervisor after a reboot swap; it is the
// action whose (before, after) transition the watch dispatcher observes to
// re-emit the freshly initialized state to current subscribers.
func initAction[S any]() action[S] {
	return func(rec *record[S]) (out *record[S], err error) {
		defer func() {
			if r := recover(); r != nil {
				out, err = nil, newFaultError(panicToError(r), StageInitializer, rec.restarts)
			}
		}()
		next := rec.clone()
		next.state = rec.initializer()
		return next, nil
	}
}

func updateAction[S any](f func(S) S) action[S] {
	return func(rec *record[S]) (*record[S], error) {
		next := rec.clone()
		next.state = f(rec.state)
		return next, nil
	}
}

func rebootAction[S any]() action[S] {
	return func(rec *record[S]) (*record[S], error) {
		return nil, newFaultError(ErrExplicitReboot, StageExplicit, rec.restarts)
	}
}

func mergeChans(base map[ID]chan any, add map[ID]chan any) map[ID]chan any {
	out := make(map[ID]chan any, len(base)+len(add))
	for id, ch := range base {
		out[id] = ch
	}
	for id, ch := range add {
		out[id] = ch
	}
	return out
}

func withoutChans(base map[ID]chan any, ids []ID) map[ID]chan any {
	drop := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make(map[ID]chan any, len(base))
	for id, ch := range base {
		if _, ok := drop[id]; ok {
			continue
		}
		out[id] = ch
	}
	return out
}
