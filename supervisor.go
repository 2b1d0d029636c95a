package reactors

import "time"

// supervise runs the recovery procedure for one fault, on its own goroutine
// so the crashed incarnation's actor goroutine can exit promptly. It either
// schedules a reboot — sleep, swap the record, start a fresh incarnation,
// enqueue the initializer action — or implodes when the backoff sequence is
// exhausted.
func (r *reactorImpl[S]) supervise(cause error, stage Stage) {
	rec := r.snapshot()

	r.logSupervisor.Error().Err(cause).Str("stage", string(stage)).
		Uint64("restarts", rec.restarts).Msg("recovering faulted reactor")

	delay, ok := rec.backoff.Next()
	if !ok {
		r.logSupervisor.Error().Err(ErrBackoffExhausted).Msg("imploding")
		r.implode(rec)
		return
	}

	time.Sleep(delay)

	next := rec.clone()
	next.state = zeroOf[S]()
	next.restarts = rec.restarts + 1
	r.metrics.restartInc()

	newNonBlock := newActionQueue[S](64)
	newBlock := newActionQueue[S](64)

	r.genMu.Lock()
	oldGen := r.generation
	oldNonBlock := r.nonBlock
	oldBlock := r.block

	// Close before draining: any sender racing this swap (see actor.go's
	// sendToGeneration) then panics on its send instead of slipping an
	// action into a queue this goroutine is about to abandon.
	close(oldNonBlock.ch)
	close(oldBlock.ch)
	oldNonBlock.drainDiscard(r.aw)
	oldBlock.drainDiscard(r.aw)

	r.nonBlock = newNonBlock
	r.block = newBlock
	r.generation = make(chan struct{})
	r.genMu.Unlock()
	close(oldGen)

	r.mu.Lock()
	r.current = next
	r.mu.Unlock()

	r.phase.Store(int32(phaseRunning))
	go r.runIncarnation(newNonBlock, newBlock)
	r.submitBlocking(initAction[S]())
}
