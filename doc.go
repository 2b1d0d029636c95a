// Package reactors provides supervised, single-writer state containers.
//
// A Reactor serializes changes from many asynchronous publishers into one
// authoritative state value, and fans change-derived messages out to dynamic
// subscribers. A crashed reducer, emitter, or initializer is recovered by a
// supervisor that reboots the reactor's state through a caller-supplied
// backoff policy, and implodes the reactor once that policy is exhausted.
//
// Constructors
//   - New(opts ...Option[S]): the sole constructor. A reactor does nothing
//     until Start is called.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created reactor:
//   - Reducer: identity on state
//   - Emitter: returns no messages
//   - Initializer: returns the zero value of S
//   - Backoff: the doubling sequence 500ms,1s,2s,4s,8s,16s,32s,64s
//   - Logger: discards everything
//
// Channel lifecycle
// Publisher and subscriber channels are borrowed by the reactor once
// attached: it closes them on removal or implosion. Callers must not close an
// attached channel themselves; a close-watcher tolerates this by issuing a
// remove, but the race is the caller's to avoid.
//
// Concurrency model
// Each reactor serializes mutations through two FIFO action queues — one for
// fast, pure transformations, one for actions that may block on caller code
// (the reducer, the initializer). Both queues feed the same record, so at
// most one mutation is ever being applied at a time; many reactors may run
// concurrently within one process.
package reactors
