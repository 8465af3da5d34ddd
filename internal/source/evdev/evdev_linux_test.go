//go:build linux

package evdev

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maus-dev/maus/pkg/hid"
)

func TestSetBit(t *testing.T) {
	var b uint8
	b = setBit(b, hid.BtnLeft, true)
	assert.Equal(t, uint8(hid.BtnLeft), b)

	b = setBit(b, hid.BtnRight, true)
	assert.Equal(t, uint8(hid.BtnLeft|hid.BtnRight), b)

	b = setBit(b, hid.BtnLeft, false)
	assert.Equal(t, uint8(hid.BtnRight), b)

	// clearing a clear bit is a no-op
	b = setBit(b, hid.BtnLeft, false)
	assert.Equal(t, uint8(hid.BtnRight), b)
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   int32
		want int8
	}{
		{0, 0},
		{127, 127},
		{128, 127},
		{4096, 127},
		{-128, -128},
		{-129, -128},
		{-4096, -128},
		{-1, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampByte(tt.in), "clampByte(%d)", tt.in)
	}
}
