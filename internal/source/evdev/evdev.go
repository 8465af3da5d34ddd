// Package evdev reads relative mouse motion from a Linux input event device
// (/dev/input/eventN) and folds it into boot-protocol reports.
package evdev

import (
	"errors"
	"log/slog"

	"github.com/maus-dev/maus/internal/source"
)

func init() {
	source.Register("evdev", New)
}

// New builds an evdev source for the configured device path.
func New(cfg source.Config, logger *slog.Logger) (source.Source, error) {
	if cfg.Path == "" {
		return nil, errors.New("evdev: source path required (try 'maus devices')")
	}
	return newPlatform(cfg.Path, logger)
}
