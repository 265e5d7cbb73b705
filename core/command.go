package core

import (
	"errors"

	"picoped/protocol"
)

// OpKind identifies the state mutation a command byte performs
type OpKind uint8

const (
	OpNone OpKind = iota
	OpSetDirection
	OpSetEnable
	OpSetLED
	OpSetPulse // continuous pulse gate, independent of turns
	OpCancelTurn
	OpStartTurn
	OpSetStepsPerTurn
	OpSetHalfPeriod
)

func (k OpKind) String() string {
	switch k {
	case OpSetDirection:
		return "direction"
	case OpSetEnable:
		return "enable"
	case OpSetLED:
		return "led"
	case OpSetPulse:
		return "pulse"
	case OpCancelTurn:
		return "cancel_turn"
	case OpStartTurn:
		return "start_turn"
	case OpSetStepsPerTurn:
		return "steps_per_turn"
	case OpSetHalfPeriod:
		return "half_period"
	default:
		return "none"
	}
}

// Command is one entry of the single-byte command protocol
type Command struct {
	Code byte
	Name string
	Op   OpKind

	// Arg is the operand: 0/1 for the boolean lines, the edge count for
	// OpSetStepsPerTurn and microseconds for OpSetHalfPeriod
	Arg uint32
}

var (
	ErrDuplicateCode = errors.New("command code already registered")
	ErrNoOp          = errors.New("command has no operation")
)

// CommandTable maps command bytes to state mutations. It is built once at
// startup and only read from the tick loop.
type CommandTable struct {
	byCode [256]*Command
	order  []*Command
}

// NewCommandTable creates an empty table
func NewCommandTable() *CommandTable {
	return &CommandTable{}
}

// Register adds a command to the table
func (t *CommandTable) Register(cmd Command) error {
	if cmd.Op == OpNone {
		return ErrNoOp
	}
	if t.byCode[cmd.Code] != nil {
		return ErrDuplicateCode
	}
	c := cmd
	t.byCode[cmd.Code] = &c
	t.order = append(t.order, &c)
	return nil
}

// Lookup decodes one byte
func (t *CommandTable) Lookup(b byte) (Command, bool) {
	c := t.byCode[b]
	if c == nil {
		return Command{}, false
	}
	return *c, true
}

// Commands returns every registered command in registration order
func (t *CommandTable) Commands() []Command {
	out := make([]Command, len(t.order))
	for i, c := range t.order {
		out[i] = *c
	}
	return out
}

// Count returns the number of registered commands
func (t *CommandTable) Count() int {
	return len(t.order)
}

// Apply performs the command's mutation on s. Returns false for a command
// that left the state untouched (turn start while a turn is running).
func Apply(s *ControlState, cmd Command) bool {
	on := cmd.Arg != 0
	switch cmd.Op {
	case OpSetDirection:
		s.Direction = on
	case OpSetEnable:
		s.Enable = on
	case OpSetLED:
		s.LED = on
	case OpSetPulse:
		s.StepActive = on
	case OpCancelTurn:
		s.CancelTurn()
	case OpStartTurn:
		return s.StartTurn()
	case OpSetStepsPerTurn:
		s.StepsPerTurn = cmd.Arg
	case OpSetHalfPeriod:
		s.HalfPeriodUS = cmd.Arg
	default:
		return false
	}
	return true
}

// DefaultCommandTable builds the PED command set
func DefaultCommandTable() *CommandTable {
	t := NewCommandTable()
	mustRegister := func(cmd Command) {
		if err := t.Register(cmd); err != nil {
			panic("command " + byteName(cmd.Code) + ": " + err.Error())
		}
	}

	mustRegister(Command{Code: protocol.CmdDirectionLow, Name: "direction_low", Op: OpSetDirection, Arg: 0})
	mustRegister(Command{Code: protocol.CmdDirectionHigh, Name: "direction_high", Op: OpSetDirection, Arg: 1})
	mustRegister(Command{Code: protocol.CmdEnableLow, Name: "enable_low", Op: OpSetEnable, Arg: 0})
	mustRegister(Command{Code: protocol.CmdEnableHigh, Name: "enable_high", Op: OpSetEnable, Arg: 1})
	mustRegister(Command{Code: protocol.CmdLEDLow, Name: "led_low", Op: OpSetLED, Arg: 0})
	mustRegister(Command{Code: protocol.CmdLEDHigh, Name: "led_high", Op: OpSetLED, Arg: 1})
	mustRegister(Command{Code: protocol.CmdPulseOff, Name: "pulse_off", Op: OpSetPulse, Arg: 0})
	mustRegister(Command{Code: protocol.CmdPulseOn, Name: "pulse_on", Op: OpSetPulse, Arg: 1})
	mustRegister(Command{Code: protocol.CmdCancelTurn, Name: "cancel_turn", Op: OpCancelTurn})
	mustRegister(Command{Code: protocol.CmdTurn, Name: "one_turn", Op: OpStartTurn})

	for _, s := range protocol.StepsPerTurnCodes {
		mustRegister(Command{
			Code: s.Code,
			Name: "steps_" + utoa(s.Edges),
			Op:   OpSetStepsPerTurn,
			Arg:  s.Edges,
		})
	}

	for _, f := range protocol.FrequencyCodes {
		mustRegister(Command{
			Code: f.Code,
			Name: "half_period_" + utoa(f.HalfPeriodUS) + "us",
			Op:   OpSetHalfPeriod,
			Arg:  f.HalfPeriodUS,
		})
	}

	return t
}
