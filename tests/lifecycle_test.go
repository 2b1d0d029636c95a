package tests

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/reactors"
)

type s1State struct{ Count int }

// TestLifecycleAndDestructorTiming checks that a destructor does not fire
// while any subscriber remains, and fires exactly once the moment the last
// one is removed.
func TestLifecycleAndDestructorTiming(t *testing.T) {
	var destroyed atomic.Bool

	r := reactors.New[s1State](
		reactors.WithInitializer(func() s1State { return s1State{Count: 1} }),
		reactors.WithEmitter(func(_, n s1State) []any { return []any{n} }),
	)
	r.AddDestructors(map[reactors.ID]func(){
		"D1": func() { destroyed.Store(true) },
	})

	s1 := make(chan any, 1)
	r.AddSubscribers(map[reactors.ID]chan any{"s1": s1})

	r.Start()
	require.Equal(t, s1State{Count: 1}, <-s1)

	s2 := make(chan any, 1)
	r.AddSubscribers(map[reactors.ID]chan any{"s2": s2})
	require.Equal(t, s1State{Count: 1}, <-s2)

	r.RemoveSubscribers("s1")
	r.Await()
	require.False(t, destroyed.Load())

	r.RemoveSubscribers("s2")
	r.Await()
	require.Eventually(t, destroyed.Load, time.Second, time.Millisecond)
}
