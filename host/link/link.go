// Package link talks to the PED firmware over its serial console.
//
// The protocol is fire-and-forget: each command is one byte and the firmware
// never answers, so every method here only reports transport errors.
package link

import (
	"bytes"
	"fmt"

	"picoped/host/serial"
	"picoped/protocol"
)

// Banner is the firmware greeting
const Banner = protocol.Banner

// Link is a connection to one PED controller
type Link struct {
	port serial.Port
	sent uint64
}

// New wraps an already open port
func New(port serial.Port) *Link {
	return &Link{port: port}
}

// Dial opens the serial device described by cfg
func Dial(cfg *serial.Config) (*Link, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	return New(port), nil
}

// Close closes the underlying port
func (l *Link) Close() error {
	return l.port.Close()
}

// Sent returns the number of command bytes written
func (l *Link) Sent() uint64 {
	return l.sent
}

// Send writes raw command bytes. Bytes the firmware does not know are
// silently dropped on the other end.
func (l *Link) Send(cmds ...byte) error {
	if len(cmds) == 0 {
		return nil
	}
	n, err := l.port.Write(cmds)
	l.sent += uint64(n)
	if err != nil {
		return fmt.Errorf("failed to send %q: %w", cmds[n:], err)
	}
	if n != len(cmds) {
		return fmt.Errorf("short write: sent %d of %d command bytes", n, len(cmds))
	}
	return nil
}

// StartTurn requests one bounded turn. Ignored by the firmware while a turn runs.
func (l *Link) StartTurn() error {
	return l.Send(protocol.CmdTurn)
}

// CancelTurn stops the running turn and any continuous pulsing
func (l *Link) CancelTurn() error {
	return l.Send(protocol.CmdCancelTurn)
}

// SetPulse switches continuous pulse mode
func (l *Link) SetPulse(on bool) error {
	return l.Send(pick(on, protocol.CmdPulseOn, protocol.CmdPulseOff))
}

// SetEnable drives the stepper driver enable line
func (l *Link) SetEnable(on bool) error {
	return l.Send(pick(on, protocol.CmdEnableHigh, protocol.CmdEnableLow))
}

// SetDirection drives the direction line
func (l *Link) SetDirection(high bool) error {
	return l.Send(pick(high, protocol.CmdDirectionHigh, protocol.CmdDirectionLow))
}

// SetLED drives the auxiliary indicator line
func (l *Link) SetLED(on bool) error {
	return l.Send(pick(on, protocol.CmdLEDHigh, protocol.CmdLEDLow))
}

// SetStepsPerTurn selects the edges per turn for the next turn. Only the
// values of protocol.StepsPerTurnCodes exist on the firmware.
func (l *Link) SetStepsPerTurn(edges uint32) error {
	code, ok := protocol.StepsPerTurnCode(edges)
	if !ok {
		return fmt.Errorf("unsupported steps per turn %d", edges)
	}
	return l.Send(code)
}

// SetFrequency selects the supported pulse rate closest to hz and returns
// the half period that was chosen
func (l *Link) SetFrequency(hz float64) (uint32, error) {
	if hz <= 0 {
		return 0, fmt.Errorf("invalid frequency %v", hz)
	}
	code, halfPeriod := protocol.FrequencyCode(hz)
	return halfPeriod, l.Send(code)
}

// ReadBanner reads what the firmware printed on connect, up to the first
// newline. Read errors and timeouts end the line early.
func (l *Link) ReadBanner() string {
	var line bytes.Buffer
	buf := make([]byte, 1)
	for line.Len() < 128 {
		n, err := l.port.Read(buf)
		if n == 0 || err != nil {
			break
		}
		if buf[0] == '\n' {
			break
		}
		line.WriteByte(buf[0])
	}
	return string(bytes.TrimSpace(line.Bytes()))
}

// Discard drops whatever the firmware printed after the banner
func (l *Link) Discard() error {
	return l.port.Flush()
}

func pick(on bool, high, low byte) byte {
	if on {
		return high
	}
	return low
}
