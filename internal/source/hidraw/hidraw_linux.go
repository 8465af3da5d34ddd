//go:build linux

package hidraw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/maus-dev/maus/internal/source"
)

const (
	reopenDelay = time.Second
	epollTick   = 200 * time.Millisecond

	// maxReport covers boot mice and the common wheel/pan variants.
	maxReport = 16
)

type hidrawSource struct {
	path   string
	logger *slog.Logger
}

func newPlatform(path string, logger *slog.Logger) (source.Source, error) {
	return &hidrawSource{path: path, logger: logger}, nil
}

// Run opens the node and streams raw reports until the context is cancelled,
// reopening with backoff on unplug like the evdev source.
func (s *hidrawSource) Run(ctx context.Context, ev source.Events) error {
	for {
		err := s.session(ctx, ev)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("hidraw device lost", "path", s.path, "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reopenDelay):
		}
	}
}

func (s *hidrawSource) session(ctx context.Context, ev source.Events) error {
	f, err := os.OpenFile(s.path, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	ev.Attached(deviceName(s.path))
	defer ev.Detached()

	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return fmt.Errorf("epoll_create1: %w", err)
	}
	defer unix.Close(epfd)

	fd := int(f.Fd())
	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
		return fmt.Errorf("epoll_ctl_add: %w", err)
	}

	buf := make([]byte, maxReport)
	epollEvents := make([]unix.EpollEvent, 1)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, err := unix.EpollWait(epfd, epollEvents, int(epollTick.Milliseconds()))
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			return fmt.Errorf("epoll_wait: %w", err)
		}
		if n == 0 {
			continue
		}
		if epollEvents[0].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			return fmt.Errorf("device error/hangup: %s", s.path)
		}

		// One read returns exactly one HID report.
		rn, err := f.Read(buf)
		if err != nil {
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		ev.Report(buf[:rn])
	}
}

// deviceName resolves HID_NAME from the node's uevent, falling back to the
// node path.
func deviceName(path string) string {
	data, err := os.ReadFile(filepath.Join("/sys/class/hidraw", filepath.Base(path), "device/uevent"))
	if err != nil {
		return path
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "HID_NAME="); ok {
			return v
		}
	}
	return path
}
