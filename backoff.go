package reactors

import (
	"time"

	cenkalti "github.com/cenkalti/backoff/v4"
)

// Backoff is a lazy, possibly-infinite sequence of non-negative delays
// consumed head-first on each reboot. Next returns ok == false once the
// sequence is exhausted, which triggers implosion.
type Backoff interface {
	Next() (delay time.Duration, ok bool)
}

// DefaultBackoff returns the library default: the finite doubling sequence
// 500ms,1s,2s,4s,8s,16s,32s,64s.
func DefaultBackoff() Backoff {
	return FixedSequence(
		500*time.Millisecond,
		1*time.Second,
		2*time.Second,
		4*time.Second,
		8*time.Second,
		16*time.Second,
		32*time.Second,
		64*time.Second,
	)
}

// fixedSequence is a finite Backoff built from an explicit list of delays.
type fixedSequence struct {
	delays []time.Duration
	next   int
}

// FixedSequence builds a Backoff that yields delays in order and then is
// exhausted.
func FixedSequence(delays ...time.Duration) Backoff {
	cp := make([]time.Duration, len(delays))
	copy(cp, delays)
	return &fixedSequence{delays: cp}
}

func (f *fixedSequence) Next() (time.Duration, bool) {
	if f.next >= len(f.delays) {
		return 0, false
	}
	d := f.delays[f.next]
	f.next++
	return d, true
}

// cenkaltiBackoff adapts github.com/cenkalti/backoff/v4's BackOff interface
// to Backoff. cenkalti.Stop (-1) maps to exhaustion.
type cenkaltiBackoff struct {
	inner cenkalti.BackOff
}

// FromCenkalti adapts a github.com/cenkalti/backoff/v4 policy — e.g.
// cenkalti.NewExponentialBackOff() — to the Backoff sequence the supervisor
// consumes. Use this for jittered, elapsed-time-bounded, or otherwise
// infinite reboot policies that a fixed list can't express.
func FromCenkalti(inner cenkalti.BackOff) Backoff {
	return &cenkaltiBackoff{inner: inner}
}

func (c *cenkaltiBackoff) Next() (time.Duration, bool) {
	d := c.inner.NextBackOff()
	if d == cenkalti.Stop {
		return 0, false
	}
	return d, true
}
