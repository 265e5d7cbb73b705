package core

// SchedulerStats counts what the edge scheduler has done since Arm
type SchedulerStats struct {
	Ticks          uint64
	RisingEdges    uint64
	FallingEdges   uint64
	LateEdges      uint64
	TurnsCompleted uint32
}

// EdgeScheduler produces the fixed-cadence pulse train. Each Step is one
// tick: it stages the level for the next edge, waits for that edge's
// absolute deadline, arms the following deadline and commits the outputs.
type EdgeScheduler struct {
	clock   Clock
	outputs OutputDriver

	lastCommitted bool
	stats         SchedulerStats
}

// NewEdgeScheduler creates a scheduler that waits on clock and commits to outputs
func NewEdgeScheduler(clock Clock, outputs OutputDriver) *EdgeScheduler {
	return &EdgeScheduler{
		clock:   clock,
		outputs: outputs,
	}
}

// Arm sets the first edge one half period after the current time
func (e *EdgeScheduler) Arm(s *ControlState) {
	s.NextEdgeDeadline = e.clock.NowMicros() + uint64(s.HalfPeriodUS)
	e.lastCommitted = s.PulseLevel
	e.stats = SchedulerStats{}
}

// Step runs one tick of the edge scheduler against s
func (e *EdgeScheduler) Step(s *ControlState) {
	e.stats.Ticks++

	// Turn bookkeeping: a turn that has counted down releases the pulse gate
	if s.TurnActive {
		if s.RemainingEdges == 0 {
			s.TurnActive = false
			s.StepActive = false
			e.stats.TurnsCompleted++
			RecordTiming(EvtTurnDone, 0, s.NextEdgeDeadline, 0, 0)
			if debugEnabled {
				DebugPrintln("turn done #" + utoa(e.stats.TurnsCompleted))
			}
		} else {
			s.StepActive = true
		}
	}

	// Stage the level. The toggle reads the previous level even while the
	// gate is closed, which pins it low; phase restarts from low on resume.
	s.PulseLevel = !s.PulseLevel && s.StepActive
	if s.RemainingEdges > 0 {
		s.RemainingEdges--
	}

	deadline := s.NextEdgeDeadline
	if now := e.clock.NowMicros(); now > deadline {
		// Previous tick overran; this edge goes out as soon as possible
		e.stats.LateEdges++
		RecordTiming(EvtLateEdge, 0, deadline, uint32(now-deadline), 0)
	}
	e.clock.WaitUntil(deadline)

	// The nominal schedule never moves, however late the wait returned.
	// The half period is read here, so a new rate applies from the next edge.
	s.NextEdgeDeadline = deadline + uint64(s.HalfPeriodUS)

	levels := s.Outputs()
	// Output failures are not reportable from here; the loop must keep going
	_ = e.outputs.Commit(levels)

	if levels.Pulse != e.lastCommitted {
		if levels.Pulse {
			e.stats.RisingEdges++
		} else {
			e.stats.FallingEdges++
		}
		e.lastCommitted = levels.Pulse
	}
}

// Stats returns the counters accumulated since Arm
func (e *EdgeScheduler) Stats() SchedulerStats {
	return e.stats
}
