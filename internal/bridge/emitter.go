package bridge

// Emitter is the strobe edge handler. It has two states: idle (no frame ever
// published, or forced idle after a disconnect) where every edge releases all
// data lines, and streaming, where every edge presents the next nibble of the
// active frame.
//
// Once streaming, the emitter stays streaming: a new publish merely replaces
// the content and the last frame repeats on every subsequent edge until then.
// The reader treats a repeated frame as "no further motion". The only way back
// to idle is ForceIdle.
type Emitter struct {
	buf  *Buffer
	port NibblePort
}

// NewEmitter returns an emitter reading frames from buf and driving port.
func NewEmitter(buf *Buffer, port NibblePort) *Emitter {
	return &Emitter{buf: buf, port: port}
}

// OnEdge handles one strobe transition. The protocol multiplexes nibble reads
// across consecutive edges, so rising and falling edges are treated alike.
//
// This runs on the edge watcher's goroutine and must stay total and bounded:
// no allocation, no locks, no logging, no error path.
func (e *Emitter) OnEdge() {
	if !e.buf.Active() {
		e.port.ReleaseAll()
		return
	}
	e.port.SetNibble(e.buf.Next())
}

// Streaming reports whether at least one frame is active.
func (e *Emitter) Streaming() bool {
	return e.buf.Active()
}

// ForceIdle drops the active frame and releases the data lines. Used by the
// idle-on-disconnect policy; never called from the edge path.
func (e *Emitter) ForceIdle() {
	e.buf.Clear()
	e.port.ReleaseAll()
}
