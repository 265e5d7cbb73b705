package core

// Clock is the monotonic microsecond time source the edge scheduler runs on.
// WaitUntil blocks until the absolute deadline has been reached; it must not
// be implemented as a relative sleep or the cadence drifts.
type Clock interface {
	NowMicros() uint64
	WaitUntil(deadline uint64)
}

// SoftClock is a manually driven clock. WaitUntil jumps straight to the
// deadline plus Overrun, which models processing jitter without real time
// passing. Used by tests and the host simulator's dry-run mode.
type SoftClock struct {
	now uint64

	// Overrun is added to every wait to simulate a late wake-up
	Overrun uint64

	// Waits records every deadline handed to WaitUntil when Record is set
	Record bool
	Waits  []uint64
}

// NewSoftClock creates a SoftClock starting at the given time
func NewSoftClock(start uint64) *SoftClock {
	return &SoftClock{now: start}
}

func (c *SoftClock) NowMicros() uint64 {
	return c.now
}

func (c *SoftClock) WaitUntil(deadline uint64) {
	if c.Record {
		c.Waits = append(c.Waits, deadline)
	}
	if deadline > c.now {
		c.now = deadline
	}
	c.now += c.Overrun
}

// Advance moves the clock forward without a wait
func (c *SoftClock) Advance(us uint64) {
	c.now += us
}
