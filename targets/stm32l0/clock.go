//go:build tinygo && stm32l0

package main

import (
	"monoclock/core"
	"runtime/volatile"
	"unsafe"
)

// STM32L0 peripheral memory map
const (
	rccBase     = 0x40021000
	rccAPB1ENR  = rccBase + 0x38 // APB1 peripheral clock enable
	rccTIM2EN   = 1 << 0
	rccTIM3EN   = 1 << 1
	tim2Base    = 0x40000000 // low half
	tim3Base    = 0x40000400 // high half, clocked by TIM2 update
	timCR1      = 0x00
	timCR2      = 0x04
	timSMCR     = 0x08
	timEGR      = 0x14
	timPSC      = 0x28
	timARR      = 0x2C
	timCR2MMS   = 0x7 << 4 // Master mode selection
	timMMSUpd   = 0x2 << 4 // TRGO on update event
	timSMCRTS   = 0x7 << 4 // Trigger selection (ITR0 = TIM2 for TIM3)
	timSMCRSMS  = 0x7      // Slave mode selection
	timSMSExt1  = 0x7      // External clock mode 1
	timEGRUG    = 1 << 0
	timCR1CEN   = 1 << 0
	counterSpan = 0xFFFF
)

func reg(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// initTimers links TIM2 and TIM3 into one 32-bit up-counter and returns the
// pair, running. After this nothing else in the firmware touches TIM2/TIM3
// registers directly.
func initTimers() *core.TimerPair {
	reg(rccAPB1ENR).SetBits(rccTIM2EN | rccTIM3EN)

	for _, base := range []uintptr{tim2Base, tim3Base} {
		reg(base + timCR1).ClearBits(timCR1CEN)
		reg(base + timPSC).Set(0)
		reg(base + timARR).Set(counterSpan)
		reg(base + timEGR).Set(timEGRUG) // latch PSC/ARR
	}

	// TIM2 update -> TRGO -> TIM3 external clock
	reg(tim2Base+timCR2).ReplaceBits(timMMSUpd, timCR2MMS, 0)
	reg(tim3Base+timSMCR).ReplaceBits(timSMSExt1, timSMCRTS|timSMCRSMS, 0)

	// High first so the first low overflow is never lost
	reg(tim3Base + timCR1).SetBits(timCR1CEN)
	reg(tim2Base + timCR1).SetBits(timCR1CEN)

	core.DebugPrintln("[STM32L0] TIM2/TIM3 linked")
	return core.NewTimerPair(core.NewVolatileCounter(tim3Base), core.NewVolatileCounter(tim2Base))
}
