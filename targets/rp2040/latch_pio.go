//go:build rp2040

package main

// PIO output latch. Each FIFO word carries the four PED levels in its low
// nibble, one `out pins, 4` puts them on GP16..GP19 in the same cycle:
//
//	bit 0: pulse      (base pin)
//	bit 1: direction  (base+1)
//	bit 2: enable     (base+2)
//	bit 3: led        (base+3)

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"picoped/core"
)

var errPinsNotConsecutive = errors.New("PED pins must be consecutive for the PIO latch")

const latchPIOOrigin = -1 // any free offset, the program has no jumps

// buildLatchProgram creates the latch program using AssemblerV0
func buildLatchProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 4).Encode(), // 1: out pins, 4
		// .wrap
	}
}

// PIOLatch implements core.OutputDriver on one PIO state machine
type PIOLatch struct {
	sm     rp2pio.StateMachine
	base   machine.Pin
	offset uint8
}

// NewPIOLatch loads the latch program and drives all four lines low
func NewPIOLatch(sm rp2pio.StateMachine, pins core.PEDPins) (*PIOLatch, error) {
	if pins.Direction != pins.Pulse+1 || pins.Enable != pins.Pulse+2 || pins.LED != pins.Pulse+3 {
		return nil, errPinsNotConsecutive
	}

	sm.TryClaim()
	pio := sm.PIO()

	program := buildLatchProgram()
	offset, err := pio.AddProgram(program, latchPIOOrigin)
	if err != nil {
		return nil, err
	}

	base := machine.Pin(pins.Pulse)
	for i := machine.Pin(0); i < 4; i++ {
		(base + i).Configure(machine.PinConfig{Mode: pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(base, 4)
	// Shift right so bit 0 lands on the base pin, no autopull
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// Pin directions and levels must be set after Init
	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(base, 4, true)
	sm.SetPinsConsecutive(base, 4, false)
	sm.SetEnabled(true)

	return &PIOLatch{sm: sm, base: base, offset: offset}, nil
}

// Commit queues one level word. The FIFO is four deep and drains within a
// few cycles, so the wait is brief.
func (l *PIOLatch) Commit(levels core.OutputLevels) error {
	for l.sm.IsTxFIFOFull() {
	}
	l.sm.TxPut(packLevels(levels))
	return nil
}

func packLevels(levels core.OutputLevels) uint32 {
	var w uint32
	if levels.Pulse {
		w |= 1 << 0
	}
	if levels.Direction {
		w |= 1 << 1
	}
	if levels.Enable {
		w |= 1 << 2
	}
	if levels.LED {
		w |= 1 << 3
	}
	return w
}
