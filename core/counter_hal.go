package core

// CounterRegisters is the register block of one 16-bit up-counter.
// Implementations must map each call onto a single hardware access.
//
// Two blocks make up a TimerPair: the low counter's overflow clocks the high
// counter, so together they count as one 32-bit value.
type CounterRegisters interface {
	// Enabled reports the state of the counter-enable bit.
	Enabled() bool

	// SetEnabled starts or stops counting.
	SetEnabled(enabled bool)

	// Count reads the current counter value.
	Count() uint16

	// Clear writes zero to the counter.
	Clear()
}
