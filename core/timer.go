package core

// Clock frequencies for the STM32L0 binding
const (
	SysClockFreq = 16000000 // HSI16 core clock
	TimerFreq    = SysClockFreq * ratioDenominator / ratioNumerator

	// BlinkPeriodCycles is the period of the demo task, in ticks.
	BlinkPeriodCycles = 6301

	// ReportEvery is how many demo task runs go by between clock reports.
	// One report per run would need ~75kB/s, well past the UART.
	ReportEvery = 64

	// ReportPeriodCycles is the scheduled-tick spacing of clock reports.
	ReportPeriodCycles = BlinkPeriodCycles * ReportEvery
)

// timerRatio is the ratio every conversion helper goes through.
var timerRatio = Fraction{Numerator: ratioNumerator, Denominator: ratioDenominator}

// DurationFromMicros converts microseconds to ticks.
// It panics with ErrDurationOverflow if the result does not fit.
func DurationFromMicros(us uint32) Duration {
	sys := uint64(us) * SysClockFreq / 1000000
	return durationFromWide(timerRatio.FromSystem(sys))
}

// DurationFromMillis converts milliseconds to ticks.
func DurationFromMillis(ms uint32) Duration {
	sys := uint64(ms) * SysClockFreq / 1000
	return durationFromWide(timerRatio.FromSystem(sys))
}

// DurationFromSecs converts seconds to ticks. At 16MHz anything above 268s
// overflows.
func DurationFromSecs(s uint32) Duration {
	sys := uint64(s) * SysClockFreq
	return durationFromWide(timerRatio.FromSystem(sys))
}

// Micros converts d to whole microseconds, rounding down.
func (d Duration) Micros() uint32 {
	return uint32(timerRatio.ToSystem(d.inner) * 1000000 / SysClockFreq)
}

func durationFromWide(ticks uint64) Duration {
	if ticks > 0xFFFFFFFF {
		panic(ErrDurationOverflow)
	}
	return Duration{inner: uint32(ticks)}
}
