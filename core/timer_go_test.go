//go:build !tinygo

package core

import "testing"

func TestWallClockWaitsForAbsoluteDeadline(t *testing.T) {
	clock := NewWallClock()

	deadline := clock.NowMicros() + 2000
	clock.WaitUntil(deadline)
	if now := clock.NowMicros(); now < deadline {
		t.Errorf("WaitUntil returned at %d, before deadline %d", now, deadline)
	}

	// A deadline in the past returns immediately
	before := clock.NowMicros()
	clock.WaitUntil(0)
	if clock.NowMicros()-before > 100000 {
		t.Error("Waiting on a past deadline should not block")
	}
}
