package tests

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/reactors"
)

type s2Change struct {
	Key string
	Val int
}

// TestCrashRecoveryReemitsFullState uses a reducer that can be toggled into
// panicking, and checks that the supervisor reboots the reactor and
// re-emits the full initial state to subscribers once it has recovered.
func TestCrashRecoveryReemitsFullState(t *testing.T) {
	var modeOn atomic.Bool
	modeOn.Store(true)

	reducer := func(state map[string]int, _ reactors.ID, msg any) map[string]int {
		if !modeOn.Load() {
			panic("reducer disabled")
		}
		ch := msg.(s2Change)
		next := make(map[string]int, len(state)+1)
		for k, v := range state {
			next[k] = v
		}
		next[ch.Key] = ch.Val
		return next
	}

	emitter := func(oldState, newState map[string]int) []any {
		var added []any
		for k := range newState {
			if _, ok := oldState[k]; !ok {
				added = append(added, k)
			}
		}
		return added
	}

	r := reactors.New[map[string]int](
		reactors.WithInitializer(func() map[string]int { return map[string]int{"zero": 0} }),
		reactors.WithReducer(reducer),
		reactors.WithEmitter(emitter),
		reactors.WithBackoff(reactors.FixedSequence(2*time.Millisecond, 2*time.Millisecond, 2*time.Millisecond)),
	)

	p := make(chan any, 1)
	r.AddPublishers(map[reactors.ID]chan any{"p": p})
	s := make(chan any, 1)
	r.AddSubscribers(map[reactors.ID]chan any{"s": s})

	r.Start()
	require.Equal(t, "zero", <-s)

	p <- s2Change{Key: "one", Val: 1}
	require.Equal(t, "one", <-s)

	modeOn.Store(false)

	p <- s2Change{Key: "two", Val: 1}
	require.Equal(t, "zero", <-s)

	p <- s2Change{Key: "two", Val: 1}
	require.Equal(t, "zero", <-s)

	modeOn.Store(true)

	p <- s2Change{Key: "two", Val: 1}
	require.Equal(t, "two", <-s)
}
