package gpioport

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Watcher blocks on strobe transitions and invokes the edge handler for each
// one. The protocol reads a nibble on both rising and falling edges, so the
// pin is armed for both.
type Watcher struct {
	pin gpio.PinIO
}

// NewWatcher configures the strobe pin as a pulled-up input with edge
// detection on both transitions.
func NewWatcher(pinName string) (*Watcher, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("gpioport: no such pin %q", pinName)
	}
	if err := pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("gpioport: arm strobe %s: %w", pinName, err)
	}
	return &Watcher{pin: pin}, nil
}

// Watch calls onEdge for every strobe transition until the context is
// cancelled. It runs on its own goroutine, dedicated to the time-critical
// path; onEdge must be total and fast.
//
// WaitForEdge carries a timeout only so cancellation is noticed; edges
// themselves wake the kernel immediately.
func (w *Watcher) Watch(ctx context.Context, onEdge func()) error {
	for ctx.Err() == nil {
		if w.pin.WaitForEdge(100 * time.Millisecond) {
			onEdge()
		}
	}
	return ctx.Err()
}
