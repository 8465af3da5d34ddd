package bridge_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maus-dev/maus/internal/bridge"
	"github.com/maus-dev/maus/pkg/hid"
	"github.com/maus-dev/maus/pkg/wire"
)

func TestAccumulatorScalesAndDrains(t *testing.T) {
	a := bridge.NewAccumulator(0.5)
	a.Accept(hid.MotionReport{DX: 100, DY: -100})

	d, ok := a.Drain()
	require.True(t, ok)
	assert.Equal(t, wire.Delta{X: 50, Y: -50}, d)

	// Nothing new accepted: no motion pending.
	_, ok = a.Drain()
	assert.False(t, ok)
}

func TestAccumulatorSumsAcrossReports(t *testing.T) {
	a := bridge.NewAccumulator(1.0)
	for i := 0; i < 10; i++ {
		a.Accept(hid.MotionReport{DX: 3, DY: -2})
	}
	d, ok := a.Drain()
	require.True(t, ok)
	assert.Equal(t, wire.Delta{X: 30, Y: -20}, d)
}

func TestAccumulatorSaturates(t *testing.T) {
	a := bridge.NewAccumulator(1.0)
	// 1000 counts per axis, far beyond the representable range.
	for i := 0; i < 10; i++ {
		a.Accept(hid.MotionReport{DX: 100, DY: -100})
	}
	d, ok := a.Drain()
	require.True(t, ok)
	assert.Equal(t, wire.Delta{X: 127, Y: -127}, d, "clamp, never wrap")
}

func TestAccumulatorRoundsTiesAwayFromZero(t *testing.T) {
	tests := []struct {
		name  string
		dx    int8
		dy    int8
		scale float64
		want  wire.Delta
	}{
		{name: "positive half rounds up", dx: 1, dy: 3, scale: 0.5, want: wire.Delta{X: 1, Y: 2}},
		{name: "negative half rounds down", dx: -1, dy: -3, scale: 0.5, want: wire.Delta{X: -1, Y: -2}},
		{name: "below half truncates", dx: 1, dy: -1, scale: 0.4, want: wire.Delta{X: 0, Y: 0}},
		{name: "above half rounds", dx: 1, dy: -1, scale: 0.6, want: wire.Delta{X: 1, Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := bridge.NewAccumulator(tt.scale)
			a.Accept(hid.MotionReport{DX: tt.dx, DY: tt.dy})
			d, ok := a.Drain()
			require.True(t, ok)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestAccumulatorZeroDeltaStillPending(t *testing.T) {
	// A report always marks motion pending, even when scaling rounds the
	// deltas to zero; the reader still gets a fresh (0,0) frame.
	a := bridge.NewAccumulator(0.1)
	a.Accept(hid.MotionReport{DX: 1, DY: 1})
	d, ok := a.Drain()
	require.True(t, ok)
	assert.Equal(t, wire.Delta{}, d)
}

func TestAccumulatorReset(t *testing.T) {
	a := bridge.NewAccumulator(1.0)
	a.Accept(hid.MotionReport{DX: 42, DY: 7})
	a.Reset()
	_, ok := a.Drain()
	assert.False(t, ok, "reset must clear pending motion")
}

func TestAccumulatorConcurrentAccept(t *testing.T) {
	a := bridge.NewAccumulator(1.0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				a.Accept(hid.MotionReport{DX: 1, DY: -1})
			}
		}()
	}
	wg.Wait()
	d, ok := a.Drain()
	require.True(t, ok)
	// 800 counts saturate at the clamp boundary.
	assert.Equal(t, wire.Delta{X: 127, Y: -127}, d)
}
