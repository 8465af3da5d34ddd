// Package source defines the inbound side of the adapter: collaborators that
// deliver raw mouse report bytes plus attach/detach notifications, decoupled
// from how the bytes are obtained (evdev, hidraw, or a scripted source in
// tests).
package source

import (
	"context"
	"log/slog"
)

// Events receives the source's notifications. All callbacks are invoked from
// the source's Run goroutine, one at a time; they are conceptually part of
// the main loop's cooperative schedule.
type Events interface {
	// Attached is called when the device becomes available and reports are
	// about to flow.
	Attached(name string)
	// Detached is called when the device disappears. The source keeps
	// trying to reattach until its context is cancelled.
	Detached()
	// Report delivers one raw report. The slice is only valid for the
	// duration of the call.
	Report(data []byte)
}

// Source produces mouse reports until the context is cancelled.
type Source interface {
	Run(ctx context.Context, ev Events) error
}

// Config selects and parameterizes an input source.
type Config struct {
	Type string `help:"Input source type" enum:"evdev,hidraw" default:"evdev" env:"MAUS_SOURCE_TYPE"`
	Path string `help:"Input device path, e.g. /dev/input/event3 (see 'maus devices')" env:"MAUS_SOURCE_PATH"`
}

// Factory builds a Source from its configuration.
type Factory func(cfg Config, logger *slog.Logger) (Source, error)
