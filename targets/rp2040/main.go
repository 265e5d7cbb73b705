//go:build rp2040

package main

import (
	"context"
	"machine"
	"time"

	"picoped/core"
	"picoped/protocol"
)

const blinkInterval = 250 * time.Millisecond

func main() {
	// Clear any watchdog state left from a previous reset
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	gpioDriver := NewRPGPIODriver()
	led := core.GPIOPin(machine.LED)
	_ = gpioDriver.ConfigureOutput(led)

	// Alive blink before the console comes up
	for i := 0; i < 2; i++ {
		_ = gpioDriver.SetPin(led, true)
		time.Sleep(blinkInterval)
		_ = gpioDriver.SetPin(led, false)
		time.Sleep(blinkInterval)
	}

	InitUSB()
	USBPrintln(protocol.Banner)

	outputs, err := newOutputs(GetMode(), gpioDriver)
	if err != nil {
		USBPrintln("output setup failed: " + err.Error())
		for {
			time.Sleep(time.Second)
		}
	}

	indicator, _ := core.NewPinIndicator(gpioDriver, led)

	ctrl := core.NewController(core.Config{
		Clock:     HardwareClock{},
		Outputs:   outputs,
		Input:     &USBSource{},
		Indicator: indicator,
	})

	_ = ctrl.Run(context.Background())
}
