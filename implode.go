package reactors

// implode is the irreversible teardown sequence. It runs exactly once
// regardless of which of the two triggers (last subscriber removed, backoff
// exhaustion) reaches it first, and swallows per-step failures so one bad
// destructor cannot stop the rest from running.
func (r *reactorImpl[S]) implode(rec *record[S]) {
	r.implodeOnce.Do(func() {
		r.phase.Store(int32(phaseImploded))

		for _, id := range identsOf(rec.subscribers) {
			closeAnyChan(rec.subscribers[id])
		}
		for _, id := range identsOf(rec.publishers) {
			closeAnyChan(rec.publishers[id])
		}
		for _, id := range identsOf(rec.destructors) {
			r.runDestructor(id, rec.destructors[id])
		}

		r.logSupervisor.Info().Int("restarts", int(rec.restarts)).Msg("reactor imploded")
	})
}

func (r *reactorImpl[S]) runDestructor(id ID, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logSupervisor.Error().Interface("panic", rec).Str("destructor", id).
				Msg("destructor panicked, continuing teardown")
		}
	}()
	fn()
}
