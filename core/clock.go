package core

// Fraction relates one monotonic tick to system-clock ticks:
// monotonic ticks * Numerator / Denominator = system ticks.
type Fraction struct {
	Numerator   uint32
	Denominator uint32
}

// Tick ratio between the linked timers and the core clock. Both run from the
// same source, so the ratio is identity. Neither term may be zero.
const (
	ratioNumerator   = 1
	ratioDenominator = 1
)

// ToSystem converts monotonic ticks to system-clock ticks.
// It panics with ErrZeroRatio if either term is zero.
func (f Fraction) ToSystem(ticks uint32) uint64 {
	f.mustBeValid()
	return uint64(ticks) * uint64(f.Numerator) / uint64(f.Denominator)
}

// FromSystem converts system-clock ticks to monotonic ticks.
// It panics with ErrZeroRatio if either term is zero.
func (f Fraction) FromSystem(sys uint64) uint64 {
	f.mustBeValid()
	return sys * uint64(f.Denominator) / uint64(f.Numerator)
}

func (f Fraction) mustBeValid() {
	if f.Numerator == 0 || f.Denominator == 0 {
		panic(ErrZeroRatio)
	}
}

// Clock is what a scheduler needs from a monotonic time base.
type Clock interface {
	Ratio() Fraction
	Zero() Instant
	Now() Instant
}

// pairRegs is the hardware state shared by every clock handle.
type pairRegs struct {
	high CounterRegisters
	low  CounterRegisters
}

func (r *pairRegs) now() Instant {
	v, retries := readComposite(r.high, r.low)
	if retries != 0 {
		RecordTiming(EvtTornRead, 0, v, retries, 0)
	}
	return Instant{inner: v}
}

// ArmedClock is a clock whose counters are bound and running but have not
// been zeroed yet. Its only real job is to be Reset by the scheduler.
type ArmedClock struct {
	regs    *pairRegs
	isReset bool
}

// Bind consumes pair and returns the armed clock that now owns its counters.
// The counters keep running; pair is left empty and cannot be bound again.
func Bind(pair *TimerPair) *ArmedClock {
	high, low := pair.take()
	a := &ArmedClock{regs: &pairRegs{high: high, low: low}}
	RecordTiming(EvtBind, 0, a.regs.now().inner, 0, 0)
	DebugPrintln("[CLOCK] timer pair bound")
	return a
}

// Ratio returns the tick ratio of the bound timers.
func (a *ArmedClock) Ratio() Fraction {
	return Fraction{Numerator: ratioNumerator, Denominator: ratioDenominator}
}

// Zero returns the instant at tick 0.
func (a *ArmedClock) Zero() Instant {
	return Instant{}
}

// Now reads the counters. Before Reset the value has no defined meaning;
// it is safe to call but callers must not depend on it.
func (a *ArmedClock) Now() Instant {
	return a.regs.now()
}

// Reset zeroes both counters and returns the running clock.
//
// The scheduler calls this exactly once, after start-up code finishes and
// before any task runs. It must not overlap any Now call: between the pause
// and the resume a reader can see a half-cleared counter. A second call
// panics with ErrAlreadyReset.
func (a *ArmedClock) Reset() MonotonicClock {
	if a.isReset {
		panic(ErrAlreadyReset)
	}
	a.isReset = true

	hi, lo := a.regs.high, a.regs.low

	// Pause
	hi.SetEnabled(false)
	lo.SetEnabled(false)
	// Clear
	hi.Clear()
	lo.Clear()
	// Resume
	hi.SetEnabled(true)
	lo.SetEnabled(true)

	RecordTiming(EvtResetClock, 0, 0, 0, 0)
	DebugPrintln("[CLOCK] counters reset")
	return MonotonicClock{regs: a.regs}
}

// MonotonicClock is the running time base. It carries no state of its own
// beyond a reference to the counters, so copies are cheap and share the
// same hardware.
type MonotonicClock struct {
	regs *pairRegs
}

// Ratio returns the tick ratio of the bound timers.
func (c MonotonicClock) Ratio() Fraction {
	return Fraction{Numerator: ratioNumerator, Denominator: ratioDenominator}
}

// Zero returns the instant at tick 0.
func (c MonotonicClock) Zero() Instant {
	return Instant{}
}

// Now returns the current instant.
func (c MonotonicClock) Now() Instant {
	return c.regs.now()
}

var (
	_ Clock = (*ArmedClock)(nil)
	_ Clock = MonotonicClock{}
)
