package core

// Startup defaults expected by existing host-side tooling. Steps per turn
// counts edges: each physical step needs a rising and a falling edge, so
// 1600 edges move the motor 800 steps.
const (
	DefaultStepsPerTurn = 1600
	DefaultHalfPeriodUS = 63 // ~7937 Hz
)

// OutputLevels are the four PED-side lines committed on every edge
type OutputLevels struct {
	Pulse     bool
	Direction bool
	Enable    bool
	LED       bool
}

// ControlState is the single owned state shared by the edge scheduler and
// the command processor. Only the main loop touches it, and only between
// edge commits.
type ControlState struct {
	Enable    bool
	Direction bool
	LED       bool

	// StepActive gates the pulse train. Set by a running turn or by
	// continuous pulse mode.
	StepActive bool

	// TurnActive is true while RemainingEdges counts down a bounded turn
	TurnActive     bool
	RemainingEdges uint32

	// StepsPerTurn is only read when a new turn starts
	StepsPerTurn uint32

	// HalfPeriodUS is only read when arming the next deadline
	HalfPeriodUS uint32

	NextEdgeDeadline uint64 // absolute, microseconds
	PulseLevel       bool
}

// NewControlState returns the power-on state
func NewControlState() ControlState {
	return ControlState{
		StepsPerTurn: DefaultStepsPerTurn,
		HalfPeriodUS: DefaultHalfPeriodUS,
	}
}

// StartTurn arms a bounded turn of StepsPerTurn edges.
// A request while a turn is in flight is ignored.
func (s *ControlState) StartTurn() bool {
	if s.TurnActive {
		return false
	}
	s.TurnActive = true
	s.RemainingEdges = s.StepsPerTurn
	return true
}

// CancelTurn stops any turn and any continuous pulsing
func (s *ControlState) CancelTurn() {
	s.TurnActive = false
	s.StepActive = false
	s.RemainingEdges = 0
}

// Outputs snapshots the levels to be committed
func (s *ControlState) Outputs() OutputLevels {
	return OutputLevels{
		Pulse:     s.PulseLevel,
		Direction: s.Direction,
		Enable:    s.Enable,
		LED:       s.LED,
	}
}

// FrequencyMilliHz returns the pulse frequency for a half period in millihertz,
// keeping the arithmetic integer on the MCU
func FrequencyMilliHz(halfPeriodUS uint32) uint32 {
	if halfPeriodUS == 0 {
		return 0
	}
	return uint32(1000000000 / (2 * uint64(halfPeriodUS)))
}
