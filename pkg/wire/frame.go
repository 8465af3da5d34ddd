// Package wire implements the nibble frame format spoken on the sampler's
// mouse port.
//
// The port is four open-drain data lines clocked by an externally driven
// strobe. On every strobe edge the adapter presents one 4-bit value, cycling
// through a fixed 7-nibble frame:
//
//	Index 0: ID (0xB) - distinguishes mouse payloads from other device
//	         classes sharing the physical protocol
//	Index 1: PAD (0xF)
//	Index 2: PAD (0xF) - padding for readers expecting a minimum frame length
//	Index 3: X high nibble (bits 4-7 of the two's-complement delta byte)
//	Index 4: X low nibble  (bits 0-3)
//	Index 5: Y high nibble
//	Index 6: Y low nibble
//
// X and Y are signed byte deltas clamped to [-127, 127]. The frame repeats
// until a new delta is published. This layout is a protocol contract with the
// peripheral and must stay bit-exact.
package wire

import "fmt"

// FrameLen is the number of nibbles in one motion frame.
const FrameLen = 7

const (
	// IDNibble marks a relative-motion mouse frame.
	IDNibble = 0xB
	// PadNibble fills the two reserved slots after the ID.
	PadNibble = 0xF
)

// Frame is one complete motion update. Each element holds a single nibble;
// the upper four bits of every byte are always zero.
type Frame [FrameLen]uint8

// Delta is a drained, saturated motion delta ready for encoding.
// Both components are in [-127, 127].
type Delta struct {
	X, Y int8
}

// Clamp saturates an accumulated component to the representable delta range.
// Saturation is a clamp, never a wrap.
func Clamp(v int32) int8 {
	if v > 127 {
		return 127
	}
	if v < -127 {
		return -127
	}
	return int8(v)
}

// Encode builds the 7-nibble frame for a delta.
func Encode(d Delta) Frame {
	x := uint8(d.X)
	y := uint8(d.Y)
	return Frame{
		IDNibble,
		PadNibble,
		PadNibble,
		x >> 4, x & 0x0F,
		y >> 4, y & 0x0F,
	}
}

// Decode reconstructs the delta from a frame. It is the inverse of Encode and
// exists for tracing and tests; the adapter itself only ever encodes.
func Decode(f Frame) (Delta, error) {
	if f[0] != IDNibble {
		return Delta{}, fmt.Errorf("wire: bad frame ID nibble 0x%X", f[0])
	}
	for i, n := range f {
		if n > 0x0F {
			return Delta{}, fmt.Errorf("wire: nibble %d out of range: 0x%X", i, n)
		}
	}
	return Delta{
		X: int8(f[3]<<4 | f[4]),
		Y: int8(f[5]<<4 | f[6]),
	}, nil
}

// Bytes returns the frame as a byte slice for hex tracing.
func (f Frame) Bytes() []byte {
	b := make([]byte, FrameLen)
	copy(b, f[:])
	return b
}

func (f Frame) String() string {
	d, err := Decode(f)
	if err != nil {
		return fmt.Sprintf("wire.Frame(%X invalid)", f[:])
	}
	return fmt.Sprintf("wire.Frame(%X dx=%d dy=%d)", f[:], d.X, d.Y)
}
