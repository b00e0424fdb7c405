package core

// noCopy makes `go vet` (copylocks) flag any copy of a struct embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// TimerPair is ownership of two 16-bit up-counters wired so that the low
// counter's overflow clocks the high counter.
//
// The register blocks are unexported: platform setup builds a TimerPair with
// NewTimerPair, and the only thing anyone can do with it afterwards is hand
// it to Bind. Pass it by pointer; it must not be copied.
type TimerPair struct {
	_    noCopy
	high CounterRegisters
	low  CounterRegisters
}

// NewTimerPair wraps two already-configured and linked counters.
// high must be the counter clocked by low's overflow.
func NewTimerPair(high, low CounterRegisters) *TimerPair {
	return &TimerPair{high: high, low: low}
}

// Bound reports whether the pair has already been handed off.
func (p *TimerPair) Bound() bool {
	return p == nil || p.high == nil
}

// take moves the register blocks out of the pair, leaving it empty.
func (p *TimerPair) take() (high, low CounterRegisters) {
	if p.Bound() {
		panic(ErrPairConsumed)
	}
	high, low = p.high, p.low
	p.high, p.low = nil, nil
	return high, low
}
