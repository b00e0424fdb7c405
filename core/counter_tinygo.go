//go:build tinygo

package core

import (
	"runtime/volatile"
	"unsafe"
)

// General-purpose timer register offsets (STM32 TIMx layout)
const (
	timCR1 = 0x00 // Control register 1
	timCNT = 0x24 // Counter

	timCR1CEN = 1 << 0 // Counter enable
)

// VolatileCounter is a CounterRegisters backed by a memory-mapped timer block.
type VolatileCounter struct {
	cr1 *volatile.Register32
	cnt *volatile.Register32
}

// NewVolatileCounter maps the timer register block at base.
func NewVolatileCounter(base uintptr) *VolatileCounter {
	return &VolatileCounter{
		cr1: (*volatile.Register32)(unsafe.Pointer(base + timCR1)),
		cnt: (*volatile.Register32)(unsafe.Pointer(base + timCNT)),
	}
}

// Enabled reports whether CR1.CEN is set
func (c *VolatileCounter) Enabled() bool {
	return c.cr1.HasBits(timCR1CEN)
}

// SetEnabled sets or clears CR1.CEN
func (c *VolatileCounter) SetEnabled(enabled bool) {
	if enabled {
		c.cr1.SetBits(timCR1CEN)
	} else {
		c.cr1.ClearBits(timCR1CEN)
	}
}

// Count returns the low 16 bits of CNT
func (c *VolatileCounter) Count() uint16 {
	return uint16(c.cnt.Get())
}

// Clear zeroes CNT
func (c *VolatileCounter) Clear() {
	c.cnt.Set(0)
}
