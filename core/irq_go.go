//go:build !tinygo

package core

import "sync"

// irqState stands in for the saved interrupt mask on host builds.
type irqState struct{}

// irqMu gives host builds the mutual exclusion that masking interrupts gives
// on a single-core MCU.
var irqMu sync.Mutex

func disableInterrupts() irqState {
	irqMu.Lock()
	return irqState{}
}

func restoreInterrupts(irqState) {
	irqMu.Unlock()
}
