//go:build tinygo && stm32l0

package main

import (
	"machine"
	"monoclock/core"
	"runtime"
)

// Timer IDs reported in the timing ring
const (
	blinkTimerID = 1
)

func main() {
	uart := machine.Serial
	uart.Configure(machine.UARTConfig{BaudRate: 115200})
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s))
		uart.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	pair := initTimers()
	armed := core.Bind(pair)

	sched := core.Boot(armed, func() {
		core.DebugPrintln("[STM32L0] init")
	})
	clock := sched.Clock()
	if core.IsDebugEnabled() {
		core.DumpTimingRing()
	}

	// Runs until the counter wraps (~268s); see core.Periodic for what
	// happens after that.
	period := core.DurationFromCycles(core.BlinkPeriodCycles)
	sched.Schedule(core.Periodic(blinkTimerID, clock.Now().Add(period), period,
		core.ClockReporter(clock, core.ReportEvery, core.DebugAsync)))

	for {
		sched.Dispatch()
		runtime.Gosched() // let the async debug worker drain to the UART
	}
}
