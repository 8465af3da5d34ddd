// Package bridge holds the core of the adapter: the state shared between the
// asynchronous report producer and the strobe-clocked nibble consumer, and
// the main loop tying them together.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maus-dev/maus/internal/log"
	"github.com/maus-dev/maus/internal/source"
	"github.com/maus-dev/maus/pkg/hid"
	"github.com/maus-dev/maus/pkg/wire"
)

// Options tunes the bridge. Zero values are filled with defaults matching the
// reference adapter.
type Options struct {
	// Scale is the sensitivity multiplier applied to every report delta.
	Scale float64
	// DrainInterval is the main-loop cadence at which accumulated motion is
	// drained, encoded and published.
	DrainInterval time.Duration
	// IdleOnDisconnect releases all data lines when the device detaches.
	// When false the emitter keeps repeating the last frame, treating the
	// last known delta as sticky, exactly like the reference adapter.
	IdleOnDisconnect bool
}

const (
	defaultScale         = 0.5
	defaultDrainInterval = 5 * time.Millisecond
)

// Bridge owns the whole data path: reports in, accumulated motion, frame
// hand-off, nibbles out. Both the report entry point (Report) and the edge
// entry point (Emitter.OnEdge) hang off this one context object; there is no
// package-level mutable state.
type Bridge struct {
	opts    Options
	acc     *Accumulator
	buf     *Buffer
	emitter *Emitter
	port    NibblePort
	logger  *slog.Logger
	tracer  log.Tracer
}

// New wires a bridge to the given port.
func New(port NibblePort, opts Options, logger *slog.Logger, tracer log.Tracer) *Bridge {
	if opts.Scale == 0 {
		opts.Scale = defaultScale
	}
	if opts.DrainInterval <= 0 {
		opts.DrainInterval = defaultDrainInterval
	}
	if tracer == nil {
		tracer = log.NewTracer(nil)
	}
	buf := NewBuffer(port)
	return &Bridge{
		opts:    opts,
		acc:     NewAccumulator(opts.Scale),
		buf:     buf,
		emitter: NewEmitter(buf, port),
		port:    port,
		logger:  logger,
		tracer:  tracer,
	}
}

// Emitter returns the strobe edge handler to hook up to the edge watcher.
func (b *Bridge) Emitter() *Emitter { return b.emitter }

// Attached implements source.Events.
func (b *Bridge) Attached(name string) {
	b.logger.Info("mouse attached", "device", name)
}

// Detached implements source.Events. The accumulator is reset so motion from
// before the unplug cannot leak into the next session; whether the data lines
// are released as well is the configured idle policy.
func (b *Bridge) Detached() {
	b.acc.Reset()
	if b.opts.IdleOnDisconnect {
		b.emitter.ForceIdle()
	}
	b.logger.Info("mouse detached", "idle", b.opts.IdleOnDisconnect)
}

// Report implements source.Events. Reports shorter than three bytes are
// discarded silently; the stream keeps flowing, so there is nothing to
// recover. Button lines are driven immediately, outside the nibble frame.
func (b *Bridge) Report(data []byte) {
	r, ok := hid.ParseReport(data)
	if !ok {
		b.logger.Log(context.Background(), log.LevelTrace, "discarding short report", "len", len(data))
		return
	}
	b.tracer.Report(data)
	b.acc.Accept(r)
	b.port.SetButtons(r.Left(), r.Right())
}

// DrainOnce runs a single drain-and-publish cycle. It reports whether a new
// frame was published. No pending motion is a no-op, not an error.
func (b *Bridge) DrainOnce() bool {
	d, ok := b.acc.Drain()
	if !ok {
		return false
	}
	f := wire.Encode(d)
	b.buf.Publish(f)
	b.tracer.Frame(f.Bytes())
	return true
}

// Run drives the bridge until the context is cancelled: the source loop
// feeding reports in, and the drain ticker converting accumulated motion into
// published frames. The strobe watcher is started separately by the caller,
// next to the hardware it belongs to.
func (b *Bridge) Run(ctx context.Context, src source.Source) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return src.Run(ctx, b)
	})

	g.Go(func() error {
		tick := time.NewTicker(b.opts.DrainInterval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick.C:
				b.DrainOnce()
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
