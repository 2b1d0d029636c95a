package tests

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/reactors"
)

// TestOrderingUnderConcurrentUpdates has 10 submitters each issue 1000
// increments concurrently; after Await, every one of the 10000 increments
// must have been applied exactly once.
func TestOrderingUnderConcurrentUpdates(t *testing.T) {
	r := reactors.New[int](reactors.WithInitializer(func() int { return 0 }))
	r.Start()

	const submitters = 10
	const perSubmitter = 1000

	var wg sync.WaitGroup
	wg.Add(submitters)
	for i := 0; i < submitters; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perSubmitter; j++ {
				r.Update(func(s int) int { return s + 1 })
			}
		}()
	}
	wg.Wait()

	r.Await()

	require.Equal(t, submitters*perSubmitter, r.State())
}
