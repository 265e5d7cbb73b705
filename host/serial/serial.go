// Package serial opens the USB CDC console of a PED controller
package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is what the link needs from a serial device. *serial.Port from
// github.com/tarm/serial satisfies it as is; tests substitute a mock.
type Port interface {
	io.ReadWriteCloser

	// Flush discards unread input and unsent output
	Flush() error
}

// Config describes the console device
type Config struct {
	Device string // e.g. /dev/ttyACM0, COM3

	// Baud is ignored by USB CDC but required by UART bridges
	Baud int

	// ReadTimeout in milliseconds; 0 blocks
	ReadTimeout int
}

// DefaultConfig returns the settings the Pico console expects
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

var errNoDevice = errors.New("no serial device configured")

// Open opens cfg.Device
func Open(cfg *Config) (Port, error) {
	if cfg == nil || cfg.Device == "" {
		return nil, errNoDevice
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return port, nil
}
