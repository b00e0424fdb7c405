package core

import "errors"

// Contract violations. These indicate a logic defect in the caller and are
// raised with panic; nothing in this package returns them as ordinary errors.
var (
	// ErrInstantOrder is raised when a difference is taken between instants
	// given out of causal order (or more than half the counter range apart).
	ErrInstantOrder = errors.New("monoclock: earlier instant is not before self")

	// ErrDurationOverflow is raised when a Duration sum or product exceeds 32 bits.
	ErrDurationOverflow = errors.New("monoclock: duration overflow")

	// ErrDurationUnderflow is raised when a larger Duration is subtracted from a smaller one.
	ErrDurationUnderflow = errors.New("monoclock: duration underflow")

	// ErrPairConsumed is raised when a TimerPair is handed off a second time.
	ErrPairConsumed = errors.New("monoclock: timer pair already bound")

	// ErrZeroRatio is raised when a tick conversion is given a Fraction with
	// a zero term.
	ErrZeroRatio = errors.New("monoclock: fraction term is zero")

	// ErrAlreadyReset is raised when an armed clock is reset a second time.
	ErrAlreadyReset = errors.New("monoclock: clock already reset")
)
