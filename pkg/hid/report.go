// Package hid parses boot-protocol mouse reports as delivered by the USB
// host stack.
package hid

// Button bit masks for the report's button bitfield. Only the first two
// buttons are carried through to the wire side; the legacy port has no
// dedicated line for anything else.
const (
	BtnLeft  = 0x01
	BtnRight = 0x02
)

// MotionReport is one relative-motion sample from the pointing device.
// It is transient: produced once per poll, consumed immediately by the
// accumulator, never stored.
type MotionReport struct {
	Buttons uint8
	DX, DY  int8
}

// ParseReport extracts a MotionReport from raw report bytes.
//
// Boot-protocol layout: byte 0 = button bitfield, byte 1 = signed dx,
// byte 2 = signed dy. Longer reports (wheel, pan) are accepted and the extra
// bytes ignored. Reports shorter than 3 bytes are discarded without error;
// the source keeps streaming, so there is nothing to retry.
func ParseReport(data []byte) (MotionReport, bool) {
	if len(data) < 3 {
		return MotionReport{}, false
	}
	return MotionReport{
		Buttons: data[0],
		DX:      int8(data[1]),
		DY:      int8(data[2]),
	}, true
}

// Left reports whether the primary button is held.
func (r MotionReport) Left() bool { return r.Buttons&BtnLeft != 0 }

// Right reports whether the secondary button is held.
func (r MotionReport) Right() bool { return r.Buttons&BtnRight != 0 }
