package reactors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionQueueRunsInSubmissionOrder(t *testing.T) {
	q := newActionQueue[int](4)

	var order []int
	noop := func(n int) action[int] {
		return func(rec *record[int]) (*record[int], error) {
			order = append(order, n)
			return rec, nil
		}
	}

	for i := 0; i < 4; i++ {
		q.enqueue(noop(i))
	}

	rec := &record[int]{}
	for i := 0; i < 4; i++ {
		a := <-q.ch
		var err error
		rec, err = a(rec)
		require.NoError(t, err)
	}

	require.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestActionQueueDrainDiscardReportsEachBufferedAction(t *testing.T) {
	q := newActionQueue[int](4)
	aw := newAwaiter()

	for i := 0; i < 3; i++ {
		aw.submitted()
		q.enqueue(func(rec *record[int]) (*record[int], error) { return rec, nil })
	}

	q.drainDiscard(aw)

	select {
	case <-q.ch:
		t.Fatal("queue still has buffered actions after drainDiscard")
	default:
	}

	done := make(chan struct{})
	go func() {
		aw.wait()
		close(done)
	}()
	select {
	case <-done:
	default:
		t.Fatal("awaiter still reports pending work after drainDiscard accounted for it")
	}
}
