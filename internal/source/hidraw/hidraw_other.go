//go:build !linux

package hidraw

import (
	"errors"
	"log/slog"

	"github.com/maus-dev/maus/internal/source"
)

func newPlatform(path string, logger *slog.Logger) (source.Source, error) {
	return nil, errors.New("hidraw: only supported on linux")
}
