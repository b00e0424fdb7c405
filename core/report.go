package core

// ClockReport formats one report line: the deadline being served and the
// clock as read while serving it. The host monitor checks both, since only
// the second one can show a bad counter read.
func ClockReport(scheduled, now Instant) string {
	return "clock=" + utoa(scheduled.inner) + " now=" + utoa(now.inner)
}

// ClockReporter returns a Periodic callback that reads c on every run and
// emits a ClockReport on every nth run. emit is typically DebugAsync so the
// dispatch loop never waits on the UART.
func ClockReporter(c Clock, every uint32, emit func(string)) func(scheduled Instant) {
	if every == 0 {
		every = 1
	}
	var runs uint32
	return func(scheduled Instant) {
		now := c.Now()
		runs++
		if runs%every == 0 {
			emit(ClockReport(scheduled, now))
		}
	}
}
