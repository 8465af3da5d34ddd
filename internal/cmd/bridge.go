package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"periph.io/x/host/v3"

	"github.com/maus-dev/maus/internal/bridge"
	"github.com/maus-dev/maus/internal/gpioport"
	"github.com/maus-dev/maus/internal/log"
	"github.com/maus-dev/maus/internal/source"
)

// Bridge runs the adapter: USB mouse reports in, strobe-clocked nibbles out.
type Bridge struct {
	Gpio   gpioport.Config `embed:"" prefix:"gpio."`
	Source source.Config   `embed:"" prefix:"source."`

	Scale            float64       `help:"Motion sensitivity multiplier applied to each report delta" default:"0.5" env:"MAUS_SCALE"`
	DrainInterval    time.Duration `help:"Main-loop cadence for converting accumulated motion into frames" default:"5ms" env:"MAUS_DRAIN_INTERVAL"`
	IdleOnDisconnect bool          `help:"Release all data lines when the mouse detaches instead of repeating the last frame" default:"false" env:"MAUS_IDLE_ON_DISCONNECT"`
}

// Run is called by kong when the bridge command is executed.
func (b *Bridge) Run(logger *slog.Logger, tracer log.Tracer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return b.StartBridge(ctx, logger, tracer)
}

// StartBridge brings the hardware up and runs until the context is cancelled.
func (b *Bridge) StartBridge(ctx context.Context, logger *slog.Logger, tracer log.Tracer) error {
	logger.Info("starting maus bridge",
		"source", b.Source.Type,
		"path", b.Source.Path,
		"scale", b.Scale,
		"drainInterval", b.DrainInterval,
	)

	if _, err := host.Init(); err != nil {
		return err
	}

	port, err := gpioport.NewPort(b.Gpio, logger)
	if err != nil {
		return err
	}
	// Lines come up released: all-ones on the bus means "no new data".
	port.ReleaseAll()

	watcher, err := gpioport.NewWatcher(b.Gpio.Strobe)
	if err != nil {
		return err
	}

	src, err := source.Open(b.Source, logger)
	if err != nil {
		return err
	}

	br := bridge.New(port, bridge.Options{
		Scale:            b.Scale,
		DrainInterval:    b.DrainInterval,
		IdleOnDisconnect: b.IdleOnDisconnect,
	}, logger, tracer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Watch(gctx, br.Emitter().OnEdge)
	})
	g.Go(func() error {
		return br.Run(gctx, src)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info("maus bridge stopped")
		return nil
	}
	return err
}
