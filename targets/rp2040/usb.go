//go:build rp2040

package main

import (
	"machine"
)

// InitUSB configures the USB CDC console. TinyGo sets up the descriptors.
func InitUSB() {
	_ = machine.Serial.Configure(machine.UARTConfig{})
}

// USBSource is the command byte source on the USB console
type USBSource struct {
	errors uint32
}

// TryReadByte returns immediately when nothing is buffered
func (s *USBSource) TryReadByte() (byte, bool) {
	if machine.Serial.Buffered() == 0 {
		return 0, false
	}
	b, err := machine.Serial.ReadByte()
	if err != nil {
		s.errors++
		return 0, false
	}
	return b, true
}

// USBPrintln writes one line to the console
func USBPrintln(line string) {
	_, _ = machine.Serial.Write([]byte(line))
	_, _ = machine.Serial.Write([]byte("\r\n"))
}
