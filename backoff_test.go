package reactors

import (
	"testing"
	"time"

	cenkalti "github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

func TestFixedSequenceYieldsInOrderThenExhausts(t *testing.T) {
	b := FixedSequence(time.Millisecond, 2*time.Millisecond, 3*time.Millisecond)

	d, ok := b.Next()
	require.True(t, ok)
	require.Equal(t, time.Millisecond, d)

	d, ok = b.Next()
	require.True(t, ok)
	require.Equal(t, 2*time.Millisecond, d)

	d, ok = b.Next()
	require.True(t, ok)
	require.Equal(t, 3*time.Millisecond, d)

	_, ok = b.Next()
	require.False(t, ok)
}

func TestDefaultBackoffHasEightDoublingEntries(t *testing.T) {
	b := DefaultBackoff()

	want := 500 * time.Millisecond
	for i := 0; i < 8; i++ {
		d, ok := b.Next()
		require.True(t, ok)
		require.Equal(t, want, d)
		want *= 2
	}

	_, ok := b.Next()
	require.False(t, ok)
}

func TestFromCenkaltiForwardsConstantDelay(t *testing.T) {
	b := FromCenkalti(cenkalti.NewConstantBackOff(5 * time.Millisecond))

	for i := 0; i < 3; i++ {
		d, ok := b.Next()
		require.True(t, ok)
		require.Equal(t, 5*time.Millisecond, d)
	}
}

// countedBackOff is a minimal cenkalti.BackOff that stops after n calls,
// used to pin down FromCenkalti's Stop-to-exhaustion mapping without
// depending on a specific retry-limiting decorator's internal bookkeeping.
type countedBackOff struct {
	remaining int
	delay     time.Duration
}

func (c *countedBackOff) NextBackOff() time.Duration {
	if c.remaining <= 0 {
		return cenkalti.Stop
	}
	c.remaining--
	return c.delay
}

func (c *countedBackOff) Reset() { c.remaining = 0 }

func TestFromCenkaltiMapsStopToExhaustion(t *testing.T) {
	b := FromCenkalti(&countedBackOff{remaining: 2, delay: time.Millisecond})

	_, ok := b.Next()
	require.True(t, ok)
	_, ok = b.Next()
	require.True(t, ok)
	_, ok = b.Next()
	require.False(t, ok)
}
