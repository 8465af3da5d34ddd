package bridge

import (
	"sync/atomic"

	"github.com/maus-dev/maus/pkg/wire"
)

// NibblePort is the outbound side of the adapter: four open-drain data lines
// plus the dedicated button lines. SetNibble and ReleaseAll are called from
// the strobe edge path and must be cheap and non-blocking.
type NibblePort interface {
	// SetNibble drives the four data lines to the given 4-bit value,
	// least-significant bit on the lowest-numbered line.
	SetNibble(v uint8)
	// ReleaseAll releases every data line to high impedance, signalling
	// "no new data" to the external reader.
	ReleaseAll()
	// SetButtons drives the button lines (low = pressed).
	SetButtons(left, right bool)
}

// activeFrame is one published frame plus its read cursor. The nibbles are
// immutable once the frame is visible to the consumer; only the cursor moves,
// and only the consumer moves it, so the cursor needs no synchronization of
// its own. A fresh frame always starts at cursor zero.
type activeFrame struct {
	nibbles wire.Frame
	pos     int
}

// Buffer is the single-producer/single-consumer hand-off slot between the
// drain loop and the strobe edge handler. The producer prepares a fresh frame
// off to the side and publishes it with one atomic pointer swap, so the
// consumer always observes either the previous complete frame or the next
// complete frame, never a mix, and never waits on a lock.
type Buffer struct {
	port   NibblePort
	active atomic.Pointer[activeFrame]
}

// NewBuffer returns an inactive buffer writing through the given port.
func NewBuffer(port NibblePort) *Buffer {
	return &Buffer{port: port}
}

// Publish replaces the active frame, resets the cursor to the first nibble
// and immediately presents that nibble on the data lines, so a reader that
// samples before the next strobe edge still sees valid data.
func (b *Buffer) Publish(f wire.Frame) {
	next := &activeFrame{nibbles: f}
	b.active.Store(next)
	b.port.SetNibble(f[0])
}

// Next returns the nibble at the current cursor and advances the cursor
// modulo the frame length, so a stale frame repeats indefinitely until
// replaced. Consumer context only. Calling Next on an inactive buffer
// returns the released-lines value.
func (b *Buffer) Next() uint8 {
	f := b.active.Load()
	if f == nil {
		return 0x0F
	}
	n := f.nibbles[f.pos]
	f.pos = (f.pos + 1) % wire.FrameLen
	return n
}

// Active reports whether a frame has been published since startup (or since
// the last Clear).
func (b *Buffer) Active() bool {
	return b.active.Load() != nil
}

// Clear drops the active frame, returning the buffer to the inactive state.
func (b *Buffer) Clear() {
	b.active.Store(nil)
}
