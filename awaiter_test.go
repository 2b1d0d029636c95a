package reactors

import (
	"testing"
	"time"
)

func TestAwaiterWaitReturnsImmediatelyWhenEmpty(t *testing.T) {
	a := newAwaiter()

	done := make(chan struct{})
	go func() {
		a.wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return on an empty awaiter")
	}
}

func TestAwaiterWaitBlocksUntilAllCompleted(t *testing.T) {
	a := newAwaiter()
	for i := 0; i < 5; i++ {
		a.submitted()
	}

	done := make(chan struct{})
	go func() {
		a.wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("wait returned before all submissions completed")
	case <-time.After(50 * time.Millisecond):
	}

	for i := 0; i < 5; i++ {
		a.completed()
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after all submissions completed")
	}
}

func TestAwaiterReentrantSubmissionDuringWait(t *testing.T) {
	// A reaction that enqueues more work (submitted) before its triggering
	// action is marked done (completed) must not let wait observe a
	// transient zero in between.
	a := newAwaiter()
	a.submitted()

	done := make(chan struct{})
	go func() {
		a.wait()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	a.submitted() // reaction enqueues more work before the first completes
	a.completed() // original action finishes; pending is still 1

	select {
	case <-done:
		t.Fatal("wait returned while a reaction-enqueued action was still pending")
	case <-time.After(50 * time.Millisecond):
	}

	a.completed()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after the reaction-enqueued action completed")
	}
}
