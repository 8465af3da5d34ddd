//go:build !linux

package evdev

import (
	"errors"
	"log/slog"

	"github.com/maus-dev/maus/internal/source"
)

func newPlatform(path string, logger *slog.Logger) (source.Source, error) {
	return nil, errors.New("evdev: only supported on linux")
}
