// Package hidraw reads raw boot-protocol mouse reports from a Linux hidraw
// node (/dev/hidrawN) and hands the bytes to the bridge unchanged.
package hidraw

import (
	"errors"
	"log/slog"

	"github.com/maus-dev/maus/internal/source"
)

func init() {
	source.Register("hidraw", New)
}

// New builds a hidraw source for the configured device path.
func New(cfg source.Config, logger *slog.Logger) (source.Source, error) {
	if cfg.Path == "" {
		return nil, errors.New("hidraw: source path required (try 'maus devices')")
	}
	return newPlatform(cfg.Path, logger)
}
