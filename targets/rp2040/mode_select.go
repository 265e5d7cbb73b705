//go:build rp2040

package main

import (
	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"picoped/core"
)

// OutputBackend selects how the PED lines are driven
type OutputBackend uint8

const (
	// BackendGPIO writes the four pins one after another
	BackendGPIO OutputBackend = iota
	// BackendPIO commits all four pins in one PIO cycle
	BackendPIO
)

// ModeConfig determines how the firmware drives its outputs
type ModeConfig struct {
	Backend OutputBackend
	Pins    core.PEDPins
}

// GetMode returns the compiled-in mode
func GetMode() ModeConfig {
	return ModeConfig{
		Backend: BackendPIO,
		Pins:    core.DefaultPEDPins,
	}
}

// newOutputs builds the selected backend. A PIO setup failure falls back
// to plain GPIO writes.
func newOutputs(mode ModeConfig, gpio core.GPIODriver) (core.OutputDriver, error) {
	if mode.Backend == BackendPIO {
		latch, err := NewPIOLatch(rp2pio.PIO0.StateMachine(0), mode.Pins)
		if err == nil {
			return latch, nil
		}
		USBPrintln("pio latch unavailable, using gpio: " + err.Error())
	}
	return core.NewGPIOOutputs(gpio, mode.Pins)
}
