// Package testing provides shared fakes for exercising the adapter without
// hardware.
package testing

import (
	"context"
	"sync"

	"github.com/maus-dev/maus/internal/source"
)

// FakeLine records open-drain transitions. It satisfies gpioport.Line.
type FakeLine struct {
	mu  sync.Mutex
	low bool
}

func (l *FakeLine) DriveLow() error {
	l.mu.Lock()
	l.low = true
	l.mu.Unlock()
	return nil
}

func (l *FakeLine) Release() error {
	l.mu.Lock()
	l.low = false
	l.mu.Unlock()
	return nil
}

// Level reads the wire as the external peripheral would: true (1) when
// released against the pull-up, false (0) when driven low.
func (l *FakeLine) Level() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.low
}

// RecorderPort satisfies bridge.NibblePort and keeps the full history of
// nibble writes, so tests can assert on whole emitted frames.
type RecorderPort struct {
	mu       sync.Mutex
	nibbles  []uint8
	released bool
	releases int
	left     bool
	right    bool
}

func (p *RecorderPort) SetNibble(v uint8) {
	p.mu.Lock()
	p.nibbles = append(p.nibbles, v)
	p.released = false
	p.mu.Unlock()
}

func (p *RecorderPort) ReleaseAll() {
	p.mu.Lock()
	p.released = true
	p.releases++
	p.mu.Unlock()
}

func (p *RecorderPort) SetButtons(left, right bool) {
	p.mu.Lock()
	p.left, p.right = left, right
	p.mu.Unlock()
}

// Nibbles returns a copy of every nibble written so far.
func (p *RecorderPort) Nibbles() []uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]uint8, len(p.nibbles))
	copy(out, p.nibbles)
	return out
}

// Released reports whether the last data-line operation was a ReleaseAll.
func (p *RecorderPort) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

// Releases counts ReleaseAll calls.
func (p *RecorderPort) Releases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releases
}

// Buttons returns the current button line state (true = driven/pressed).
func (p *RecorderPort) Buttons() (left, right bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.left, p.right
}

// ScriptStep is one scripted source event.
type ScriptStep struct {
	Attach string // non-empty: deliver Attached with this name
	Detach bool
	Report []byte
}

// ScriptSource replays a fixed sequence of source events and then blocks
// until the context is cancelled. It satisfies source.Source.
type ScriptSource struct {
	Steps []ScriptStep
}

func (s *ScriptSource) Run(ctx context.Context, ev source.Events) error {
	for _, st := range s.Steps {
		switch {
		case st.Attach != "":
			ev.Attached(st.Attach)
		case st.Detach:
			ev.Detached()
		default:
			ev.Report(st.Report)
		}
	}
	<-ctx.Done()
	return ctx.Err()
}
