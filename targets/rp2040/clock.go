//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x24 // Raw timer high word
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// HardwareClock is core.Clock on the RP2040 1MHz system timer
type HardwareClock struct{}

// NowMicros reads the full 64-bit timer
func (HardwareClock) NowMicros() uint64 {
	// High, low, high again to detect a carry between the two reads
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// WaitUntil spins on the timer. time.Sleep granularity is too coarse for
// a 63us half period.
func (c HardwareClock) WaitUntil(deadline uint64) {
	for c.NowMicros() < deadline {
	}
}
