package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maus-dev/maus/pkg/wire"
)

func TestEncodeGoldenFrames(t *testing.T) {
	tests := []struct {
		name  string
		delta wire.Delta
		frame wire.Frame
	}{
		{
			name:  "zero motion",
			delta: wire.Delta{X: 0, Y: 0},
			frame: wire.Frame{0xB, 0xF, 0xF, 0x0, 0x0, 0x0, 0x0},
		},
		{
			name:  "positive x negative y",
			delta: wire.Delta{X: 50, Y: -50},
			// 50 = 0x32, -50 = 0xCE as a two's-complement byte
			frame: wire.Frame{0xB, 0xF, 0xF, 0x3, 0x2, 0xC, 0xE},
		},
		{
			name:  "saturated both axes",
			delta: wire.Delta{X: 127, Y: -127},
			// 127 = 0x7F, -127 = 0x81
			frame: wire.Frame{0xB, 0xF, 0xF, 0x7, 0xF, 0x8, 0x1},
		},
		{
			name:  "single count",
			delta: wire.Delta{X: 1, Y: -1},
			// 1 = 0x01, -1 = 0xFF
			frame: wire.Frame{0xB, 0xF, 0xF, 0x0, 0x1, 0xF, 0xF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.frame, wire.Encode(tt.delta))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Every representable delta must survive the nibble split.
	for x := -127; x <= 127; x++ {
		for y := -127; y <= 127; y++ {
			d := wire.Delta{X: int8(x), Y: int8(y)}
			got, err := wire.Decode(wire.Encode(d))
			require.NoError(t, err)
			require.Equal(t, d, got, "delta (%d,%d)", x, y)
		}
	}
}

func TestDecodeRejectsForeignFrames(t *testing.T) {
	f := wire.Encode(wire.Delta{X: 3, Y: 4})
	f[0] = 0xA // some other device class
	_, err := wire.Decode(f)
	assert.Error(t, err)

	f = wire.Encode(wire.Delta{})
	f[4] = 0x10 // not a nibble
	_, err = wire.Decode(f)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int32
		want int8
	}{
		{0, 0},
		{127, 127},
		{128, 127},
		{1000, 127},
		{-127, -127},
		{-128, -127},
		{-1000, -127},
		{50, 50},
		{-50, -50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wire.Clamp(tt.in), "clamp(%d)", tt.in)
	}
}

func TestFrameNibblesStayNibbles(t *testing.T) {
	for x := -128; x <= 127; x += 3 {
		for y := -128; y <= 127; y += 3 {
			f := wire.Encode(wire.Delta{X: wire.Clamp(int32(x)), Y: wire.Clamp(int32(y))})
			for i, n := range f {
				require.LessOrEqual(t, n, uint8(0x0F), "nibble %d of %v", i, f)
			}
		}
	}
}
