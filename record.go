package reactors

// record is the sole mutable entity owned exclusively by the state actor.
// All fields are read and written only from the actor's goroutine; callers
// observe them only through completed-action snapshots (Invariant 1).
type record[S any] struct {
	state   S
	started bool

	publishers  map[ID]chan any
	subscribers map[ID]chan any
	destructors map[ID]func()

	backoff  Backoff
	restarts uint64

	reducer     Reducer[S]
	emitter     Emitter[S]
	initializer Initializer[S]
}

func newRecord[S any](cfg *config[S]) *record[S] {
	return &record[S]{
		publishers:  make(map[ID]chan any),
		subscribers: make(map[ID]chan any),
		destructors: make(map[ID]func()),
		backoff:     cfg.backoff,
		reducer:     cfg.reducer,
		emitter:     cfg.emitter,
		initializer: cfg.initializer,
	}
}

// clone returns a shallow copy that an action modifies to build the next
// record. Map fields are shared with the original by reference: actions that
// change a map build a fresh one (mergeChans, withoutChans) instead of
// mutating it, so the original stays intact as the "before" record the watch
// dispatcher compares against (via diffIdents) and as the snapshot State and
// the idents accessors may still be reading.
func (r *record[S]) clone() *record[S] {
	cp := *r
	return &cp
}

// identsOf returns the sorted identifiers of m, for deterministic iteration
// (destructor order, idents accessors).
func identsOf[V any](m map[ID]V) []ID {
	out := make([]ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sortStrings(out)
	return out
}

// diffIdents returns the identifiers present in a but not in b.
func diffIdents[V any](a, b map[ID]V) []ID {
	var out []ID
	for id := range a {
		if _, ok := b[id]; !ok {
			out = append(out, id)
		}
	}
	sortStrings(out)
	return out
}
