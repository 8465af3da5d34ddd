// Package gpioport drives the sampler's mouse port: four open-drain data
// lines, two button lines and the externally clocked strobe input, on top of
// periph.io GPIO.
package gpioport

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Line is one open-drain wire. DriveLow asserts logic 0 by actively pulling
// the wire down; Release leaves the wire to the external pull-up, which the
// reader samples as logic 1. There is no driven-high state.
//
// Implementations are not internally synchronized; a line must not be driven
// from two goroutines at once.
type Line interface {
	DriveLow() error
	Release() error
}

// pinLine adapts a periph.io pin to the open-drain Line contract: output-low
// to drive, input with pull disabled to release.
type pinLine struct {
	pin gpio.PinIO
}

func (l *pinLine) DriveLow() error {
	return l.pin.Out(gpio.Low)
}

func (l *pinLine) Release() error {
	return l.pin.In(gpio.Float, gpio.NoEdge)
}

// openLine resolves a pin by name from the periph registry and returns it in
// the released state, which must be the wire state immediately after
// power-up.
func openLine(name string) (Line, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpioport: no such pin %q", name)
	}
	l := &pinLine{pin: pin}
	if err := l.Release(); err != nil {
		return nil, fmt.Errorf("gpioport: release %s: %w", name, err)
	}
	return l, nil
}
