//go:build rp2040

package main

import (
	"errors"
	"machine"

	"picoped/core"
)

// RP2040 user GPIOs are GP0..GP29; GP25 is the on-board LED on a Pico
const numGPIO = 30

var errNoSuchPin = errors.New("gpio out of range")

// RPGPIODriver implements core.GPIODriver on machine.Pin. Pin numbers are
// GPIO numbers.
type RPGPIODriver struct {
	outputs uint32 // bit n set once GPn is an output
}

// NewRPGPIODriver creates a driver with no pins configured
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{}
}

func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin >= numGPIO {
		return errNoSuchPin
	}
	if d.outputs&(1<<pin) != 0 {
		return nil
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.outputs |= 1 << pin
	return nil
}

// SetPin drives an output, configuring it on first use
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if err := d.ConfigureOutput(pin); err != nil {
		return err
	}
	machine.Pin(pin).Set(value)
	return nil
}

func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	if pin >= numGPIO {
		return false, errNoSuchPin
	}
	return machine.Pin(pin).Get(), nil
}
