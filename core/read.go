package core

// readComposite returns the 32-bit value of a chained counter pair.
//
// The high half is read before and after the low half. If the two high reads
// agree, no carry crossed the low read and high<<16|low is consistent.
// Otherwise the low counter wrapped in between and the sample is discarded.
//
// The loop takes no lock and never masks interrupts, so it is safe to call
// from task and interrupt context, re-entrantly. It terminates as long as
// the caller gets through three register reads within one low-counter
// period (65536 ticks). A context starved for longer than that can spin
// indefinitely.
//
// retries counts discarded samples.
func readComposite(high, low CounterRegisters) (value uint32, retries uint32) {
	for {
		h1 := high.Count()
		l := low.Count()
		h2 := high.Count()
		if h1 == h2 {
			return uint32(h2)<<16 | uint32(l), retries
		}
		retries++
	}
}
