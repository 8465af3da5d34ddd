package bridge

import (
	"math"
	"sync"

	"github.com/maus-dev/maus/pkg/hid"
	"github.com/maus-dev/maus/pkg/wire"
)

// Accumulator integrates incoming mouse deltas into a saturating running sum,
// decoupling the USB poll cadence from the rate at which the wire side drains
// motion. Bursts are absorbed without losing counts, at the cost of
// coarsening fast motion into fewer, larger wire updates.
type Accumulator struct {
	scale float64

	mu      sync.Mutex
	x, y    int32
	pending bool
}

// NewAccumulator returns an accumulator applying the given sensitivity
// multiplier to every report delta.
func NewAccumulator(scale float64) *Accumulator {
	return &Accumulator{scale: scale}
}

// Accept scales the report's deltas (rounded to nearest, ties away from
// zero), adds them to the running sum and marks motion pending. It takes a
// short mutex and never blocks beyond that.
//
// The sums are not bounded here; clamping happens at drain time. Callers must
// drain periodically.
func (a *Accumulator) Accept(r hid.MotionReport) {
	sx := int32(math.Round(float64(r.DX) * a.scale))
	sy := int32(math.Round(float64(r.DY) * a.scale))

	a.mu.Lock()
	a.x += sx
	a.y += sy
	a.pending = true
	a.mu.Unlock()
}

// Drain atomically reads and zeroes the accumulated motion. It reports false
// when no report has been accepted since the last drain. The returned delta
// is saturated componentwise to [-127, 127].
func (a *Accumulator) Drain() (wire.Delta, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pending {
		return wire.Delta{}, false
	}
	d := wire.Delta{X: wire.Clamp(a.x), Y: wire.Clamp(a.y)}
	a.x, a.y = 0, 0
	a.pending = false
	return d, true
}

// Reset zeroes all state. Called when the device detaches.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	a.x, a.y = 0, 0
	a.pending = false
	a.mu.Unlock()
}
