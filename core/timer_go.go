//go:build !tinygo

package core

import (
	"runtime"
	"time"
)

// spinWindow is how close to the deadline WallClock stops sleeping and
// starts spinning. Host sleeps overshoot by tens of microseconds.
const spinWindow = 200 * time.Microsecond

// WallClock is a host implementation of Clock on the Go monotonic clock
type WallClock struct {
	start time.Time
}

// NewWallClock creates a WallClock whose zero is the moment of creation
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) NowMicros() uint64 {
	return uint64(time.Since(c.start) / time.Microsecond)
}

func (c *WallClock) WaitUntil(deadline uint64) {
	target := c.start.Add(time.Duration(deadline) * time.Microsecond)
	if d := time.Until(target); d > spinWindow {
		time.Sleep(d - spinWindow)
	}
	for time.Now().Before(target) {
		runtime.Gosched()
	}
}
