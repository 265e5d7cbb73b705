package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads back the current pin state
	GetPin(pin GPIOPin) (bool, error)
}

// PEDPins is the pin assignment of the stepper driver interface
type PEDPins struct {
	Pulse     GPIOPin
	Direction GPIOPin
	Enable    GPIOPin
	LED       GPIOPin
}

// DefaultPEDPins is the Pico wiring: GP16..GP19, consecutive so a PIO
// program can drive all four with one instruction.
var DefaultPEDPins = PEDPins{
	Pulse:     16,
	Direction: 17,
	Enable:    18,
	LED:       19,
}

// OutputDriver commits one set of PED levels
type OutputDriver interface {
	Commit(levels OutputLevels) error
}

// ByteSource is a non-blocking byte input. TryReadByte must return
// immediately with ok=false when nothing is pending.
type ByteSource interface {
	TryReadByte() (b byte, ok bool)
}

// Indicator is a single on/off status light
type Indicator interface {
	Set(on bool)
}

// GPIOOutputs drives the four PED lines through a GPIODriver, one pin at a time
type GPIOOutputs struct {
	driver GPIODriver
	pins   PEDPins
}

// NewGPIOOutputs configures the PED pins as outputs, driven low
func NewGPIOOutputs(driver GPIODriver, pins PEDPins) (*GPIOOutputs, error) {
	o := &GPIOOutputs{driver: driver, pins: pins}
	for _, pin := range [4]GPIOPin{pins.Pulse, pins.Direction, pins.Enable, pins.LED} {
		if err := driver.ConfigureOutput(pin); err != nil {
			return nil, err
		}
		if err := driver.SetPin(pin, false); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Commit writes pulse first so it follows the edge deadline as closely as possible
func (o *GPIOOutputs) Commit(levels OutputLevels) error {
	if err := o.driver.SetPin(o.pins.Pulse, levels.Pulse); err != nil {
		return err
	}
	if err := o.driver.SetPin(o.pins.Direction, levels.Direction); err != nil {
		return err
	}
	if err := o.driver.SetPin(o.pins.Enable, levels.Enable); err != nil {
		return err
	}
	return o.driver.SetPin(o.pins.LED, levels.LED)
}

// PinIndicator lights an Indicator through a GPIODriver pin
type PinIndicator struct {
	driver GPIODriver
	pin    GPIOPin
}

// NewPinIndicator configures pin as an output and returns it as an Indicator
func NewPinIndicator(driver GPIODriver, pin GPIOPin) (*PinIndicator, error) {
	if err := driver.ConfigureOutput(pin); err != nil {
		return nil, err
	}
	return &PinIndicator{driver: driver, pin: pin}, nil
}

func (p *PinIndicator) Set(on bool) {
	_ = p.driver.SetPin(p.pin, on)
}
