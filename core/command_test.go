package core

import (
	"testing"
)

func TestDefaultCommandTable(t *testing.T) {
	table := DefaultCommandTable()

	if table.Count() != 26 {
		t.Errorf("Expected 26 commands, got %d", table.Count())
	}

	tests := []struct {
		code byte
		op   OpKind
		arg  uint32
	}{
		{'d', OpSetDirection, 0},
		{'D', OpSetDirection, 1},
		{'e', OpSetEnable, 0},
		{'E', OpSetEnable, 1},
		{'l', OpSetLED, 0},
		{'L', OpSetLED, 1},
		{'p', OpSetPulse, 0},
		{'P', OpSetPulse, 1},
		{'t', OpCancelTurn, 0},
		{'T', OpStartTurn, 0},
		{'0', OpSetStepsPerTurn, 200},
		{'1', OpSetStepsPerTurn, 400},
		{'2', OpSetStepsPerTurn, 800},
		{'3', OpSetStepsPerTurn, 1600},
		{'4', OpSetStepsPerTurn, 3200},
		{'5', OpSetStepsPerTurn, 6400},
		{'6', OpSetStepsPerTurn, 12800},
		{'7', OpSetStepsPerTurn, 25600},
		{'8', OpSetStepsPerTurn, 51200},
		{'@', OpSetHalfPeriod, 250},
		{'#', OpSetHalfPeriod, 167},
		{'$', OpSetHalfPeriod, 125},
		{'%', OpSetHalfPeriod, 100},
		{'^', OpSetHalfPeriod, 83},
		{'&', OpSetHalfPeriod, 71},
		{'*', OpSetHalfPeriod, 63},
	}

	for _, tt := range tests {
		cmd, ok := table.Lookup(tt.code)
		if !ok {
			t.Errorf("Command %q not registered", tt.code)
			continue
		}
		if cmd.Op != tt.op || cmd.Arg != tt.arg {
			t.Errorf("Command %q: expected %v/%d, got %v/%d", tt.code, tt.op, tt.arg, cmd.Op, cmd.Arg)
		}
		if cmd.Name == "" {
			t.Errorf("Command %q has no name", tt.code)
		}
	}
}

func TestCommandTableRejectsDuplicates(t *testing.T) {
	table := NewCommandTable()

	if err := table.Register(Command{Code: 'x', Op: OpSetLED, Arg: 1}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := table.Register(Command{Code: 'x', Op: OpSetLED}); err != ErrDuplicateCode {
		t.Errorf("Expected ErrDuplicateCode, got %v", err)
	}
	if err := table.Register(Command{Code: 'y'}); err != ErrNoOp {
		t.Errorf("Expected ErrNoOp, got %v", err)
	}
	if table.Count() != 1 {
		t.Errorf("Expected 1 command, got %d", table.Count())
	}
}

func TestCommandsKeepRegistrationOrder(t *testing.T) {
	table := NewCommandTable()
	table.Register(Command{Code: 'b', Op: OpSetLED, Arg: 1})
	table.Register(Command{Code: 'a', Op: OpSetLED})

	cmds := table.Commands()
	if len(cmds) != 2 || cmds[0].Code != 'b' || cmds[1].Code != 'a' {
		t.Errorf("Unexpected order: %+v", cmds)
	}
}

func TestApply(t *testing.T) {
	s := NewControlState()

	if !Apply(&s, Command{Op: OpStartTurn}) {
		t.Fatal("Starting an idle turn should apply")
	}
	if Apply(&s, Command{Op: OpStartTurn}) {
		t.Error("Starting a turn while one runs should not apply")
	}
	if !Apply(&s, Command{Op: OpSetPulse, Arg: 1}) || !s.StepActive {
		t.Error("Pulse on should set the gate")
	}
	Apply(&s, Command{Op: OpCancelTurn})
	if s.TurnActive || s.StepActive || s.RemainingEdges != 0 {
		t.Errorf("Cancel left state behind: %+v", s)
	}
	if Apply(&s, Command{Op: OpNone}) {
		t.Error("OpNone should not apply")
	}
}

func TestOpKindString(t *testing.T) {
	if OpStartTurn.String() != "start_turn" {
		t.Errorf("Unexpected name %q", OpStartTurn.String())
	}
	if OpKind(200).String() != "none" {
		t.Errorf("Unknown op should print as none, got %q", OpKind(200).String())
	}
}

func TestFrequencyMilliHz(t *testing.T) {
	tests := []struct {
		halfPeriod uint32
		mhz        uint32
	}{
		{250, 2000000},
		{100, 5000000},
		{63, 7936507},
		{0, 0},
	}
	for _, tt := range tests {
		if got := FrequencyMilliHz(tt.halfPeriod); got != tt.mhz {
			t.Errorf("FrequencyMilliHz(%d) = %d, expected %d", tt.halfPeriod, got, tt.mhz)
		}
	}
}
