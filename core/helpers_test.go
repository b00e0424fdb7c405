package core

import (
	"errors"
	"testing"
)

// expectPanic fails the test unless fn panics with want.
func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic %v, got none", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("expected panic %v, got %v", want, r)
		}
	}()
	fn()
}

// runningSim binds a simulated pair and boots it, returning the clock and
// the simulator behind it.
func runningSim(t *testing.T) (MonotonicClock, *SimTimer) {
	t.Helper()
	pair, sim := NewSimTimerPair()
	s := Boot(Bind(pair), nil)
	return s.Clock(), sim
}
