package gpioport

import (
	"fmt"
	"log/slog"
)

// Config names the pins making up the port. Defaults match the reference
// wiring on a Raspberry Pi header. The sampler side runs 5V logic; use a
// level shifter.
type Config struct {
	Data     []string `help:"Data line pins, LSB first" default:"GPIO2,GPIO3,GPIO4,GPIO17" env:"MAUS_GPIO_DATA"`
	Strobe   string   `help:"Strobe input pin (clocked by the sampler)" default:"GPIO27" env:"MAUS_GPIO_STROBE"`
	BtnLeft  string   `help:"Left button line pin" default:"GPIO22" env:"MAUS_GPIO_BTN_LEFT"`
	BtnRight string   `help:"Right button line pin" default:"GPIO23" env:"MAUS_GPIO_BTN_RIGHT"`
}

// dataLines is the width of the nibble bus.
const dataLines = 4

// Port composes four data lines into a nibble output plus the two button
// lines. Nibble bit 0 maps to Data[0].
//
// SetNibble and ReleaseAll run on the strobe edge path; they do nothing but
// flip pin states. Errors from the GPIO layer are swallowed there because the
// edge handler has no error path; openLine already proved the pins work.
type Port struct {
	data  [dataLines]Line
	left  Line
	right Line
}

// NewPort opens all configured lines in the released (idle) state.
func NewPort(cfg Config, logger *slog.Logger) (*Port, error) {
	if len(cfg.Data) != dataLines {
		return nil, fmt.Errorf("gpioport: need exactly %d data pins, got %d", dataLines, len(cfg.Data))
	}
	p := &Port{}
	for i, name := range cfg.Data {
		l, err := openLine(name)
		if err != nil {
			return nil, err
		}
		p.data[i] = l
	}
	var err error
	if p.left, err = openLine(cfg.BtnLeft); err != nil {
		return nil, err
	}
	if p.right, err = openLine(cfg.BtnRight); err != nil {
		return nil, err
	}
	logger.Debug("port lines released", "data", cfg.Data, "left", cfg.BtnLeft, "right", cfg.BtnRight)
	return p, nil
}

// NewPortFromLines builds a port over caller-supplied lines. Used by tests
// and non-periph backends.
func NewPortFromLines(data [dataLines]Line, left, right Line) *Port {
	return &Port{data: data, left: left, right: right}
}

// SetNibble presents a 4-bit value on the data lines, least-significant bit
// on the lowest-numbered line. Set bits are released (pull-up high), clear
// bits are driven low.
func (p *Port) SetNibble(v uint8) {
	for i := 0; i < dataLines; i++ {
		if v&(1<<i) != 0 {
			_ = p.data[i].Release()
		} else {
			_ = p.data[i].DriveLow()
		}
	}
}

// ReleaseAll releases every data line to high impedance. This is the
// power-up state and the response to a strobe edge with no active frame.
func (p *Port) ReleaseAll() {
	for i := 0; i < dataLines; i++ {
		_ = p.data[i].Release()
	}
}

// SetButtons drives the dedicated button lines: driven low means pressed,
// released means not pressed. Buttons are not part of the nibble frame.
func (p *Port) SetButtons(left, right bool) {
	if left {
		_ = p.left.DriveLow()
	} else {
		_ = p.left.Release()
	}
	if right {
		_ = p.right.DriveLow()
	} else {
		_ = p.right.Release()
	}
}
