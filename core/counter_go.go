//go:build !tinygo

package core

import "sync/atomic"

// SimTimer models two 16-bit counters chained into one 32-bit counter for
// host builds and tests. Both halves live in one word so a carry from the
// low half into the high half is observed in a single step, as the hardware
// link does it.
type SimTimer struct {
	state     atomic.Uint32
	hiEnabled atomic.Bool
	loEnabled atomic.Bool

	// onCount runs after every Count on either half. It stands in for an
	// interrupt or a counter edge landing between two register reads.
	onCount func(c *SimCounter)

	high SimCounter
	low  SimCounter
}

// SimCounter is one half of a SimTimer. It implements CounterRegisters.
type SimCounter struct {
	timer *SimTimer
	shift uint32
}

// NewSimTimer returns a stopped simulated pair holding zero.
func NewSimTimer() *SimTimer {
	s := &SimTimer{}
	s.high = SimCounter{timer: s, shift: 16}
	s.low = SimCounter{timer: s, shift: 0}
	return s
}

// NewSimTimerPair returns a running simulated pair wrapped as a TimerPair,
// along with the simulator that drives it.
func NewSimTimerPair() (*TimerPair, *SimTimer) {
	s := NewSimTimer()
	s.high.SetEnabled(true)
	s.low.SetEnabled(true)
	return NewTimerPair(&s.high, &s.low), s
}

// High returns the high (overflow-clocked) counter.
func (s *SimTimer) High() *SimCounter { return &s.high }

// Low returns the low counter.
func (s *SimTimer) Low() *SimCounter { return &s.low }

// Load sets both halves at once.
func (s *SimTimer) Load(high, low uint16) {
	s.state.Store(uint32(high)<<16 | uint32(low))
}

// Value returns the raw 32-bit composite.
func (s *SimTimer) Value() uint32 {
	return s.state.Load()
}

// OnCount installs a hook that runs after every counter read. Install it
// before the timer is shared; it is not synchronized.
func (s *SimTimer) OnCount(hook func(c *SimCounter)) {
	s.onCount = hook
}

// Advance clocks the low counter n times. A low overflow carries into the
// high counter only when the high counter is enabled.
func (s *SimTimer) Advance(n uint32) {
	if !s.loEnabled.Load() {
		return
	}
	for {
		old := s.state.Load()
		lo := uint64(old&0xFFFF) + uint64(n)
		hi := old >> 16
		if s.hiEnabled.Load() {
			hi += uint32(lo >> 16)
		}
		next := (hi&0xFFFF)<<16 | uint32(lo&0xFFFF)
		if s.state.CompareAndSwap(old, next) {
			return
		}
	}
}

// IsHigh reports whether c is the high half of its timer.
func (c *SimCounter) IsHigh() bool {
	return c.shift == 16
}

// Enabled reports the counter-enable bit
func (c *SimCounter) Enabled() bool {
	if c.IsHigh() {
		return c.timer.hiEnabled.Load()
	}
	return c.timer.loEnabled.Load()
}

// SetEnabled sets the counter-enable bit
func (c *SimCounter) SetEnabled(enabled bool) {
	if c.IsHigh() {
		c.timer.hiEnabled.Store(enabled)
	} else {
		c.timer.loEnabled.Store(enabled)
	}
}

// Count reads this half of the counter
func (c *SimCounter) Count() uint16 {
	v := uint16(c.timer.state.Load() >> c.shift)
	if hook := c.timer.onCount; hook != nil {
		hook(c)
	}
	return v
}

// Clear zeroes this half of the counter
func (c *SimCounter) Clear() {
	mask := uint32(0xFFFF) << c.shift
	for {
		old := c.timer.state.Load()
		if c.timer.state.CompareAndSwap(old, old&^mask) {
			return
		}
	}
}
