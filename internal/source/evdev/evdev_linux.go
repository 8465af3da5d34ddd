//go:build linux

package evdev

import (
	"bytes"
	"context"
	"encoding/binary"
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
	"github.com/maus-dev/maus/pkg/hid"
)

// Linux input event constants (linux/input-event-codes.h).
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	synReport = 0x00

	relX = 0x00
	relY = 0x01

	btnLeft  = 0x110
	btnRight = 0x111
)

// inputEvent mirrors struct input_event.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

const reopenDelay = time.Second

// epollTick bounds how long a quiet device can delay a cancellation check.
const epollTick = 200 * time.Millisecond

type evdevSource struct {
	path   string
	logger *slog.Logger
}

func newPlatform(path string, logger *slog.Logger) (source.Source, error) {
	return &evdevSource{path: path, logger: logger}, nil
}

// Run opens the device and streams reports until the context is cancelled.
// When the device disappears it reports a detach and keeps retrying the open,
// so unplugging and replugging the mouse needs no restart.
func (s *evdevSource) Run(ctx context.Context, ev source.Events) error {
	for {
		err := s.session(ctx, ev)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("input device lost", "path", s.path, "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reopenDelay):
		}
	}
}

// session streams reports from one open device until it fails or the context
// is cancelled. A detach is reported exactly when an attach was.
func (s *evdevSource) session(ctx context.Context, ev source.Events) error {
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

	evSize := binary.Size(inputEvent{})
	buf := make([]byte, evSize)
	epollEvents := make([]unix.EpollEvent, 1)

	// Report state folded across events until the SYN marker.
	var buttons uint8
	var dx, dy int32
	report := make([]byte, 3)

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

		if _, err := f.Read(buf); err != nil {
			return fmt.Errorf("read %s: %w", s.path, err)
		}

		var e inputEvent
		if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &e); err != nil {
			continue // skip malformed events
		}

		switch e.Type {
		case evRel:
			switch e.Code {
			case relX:
				dx += e.Value
			case relY:
				dy += e.Value
			}
		case evKey:
			switch e.Code {
			case btnLeft:
				buttons = setBit(buttons, hid.BtnLeft, e.Value != 0)
			case btnRight:
				buttons = setBit(buttons, hid.BtnRight, e.Value != 0)
			}
		case evSyn:
			if e.Code != synReport {
				continue
			}
			report[0] = buttons
			report[1] = byte(clampByte(dx))
			report[2] = byte(clampByte(dy))
			ev.Report(report)
			dx, dy = 0, 0
		}
	}
}

func setBit(b, mask uint8, on bool) uint8 {
	if on {
		return b | mask
	}
	return b &^ mask
}

// clampByte saturates a folded event delta to the report's int8 range.
// Anything larger still accumulates correctly on the bridge side because
// events are folded per SYN, not per drain.
func clampByte(v int32) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}

// deviceName resolves the kernel's device name for an event node via sysfs,
// falling back to the node path.
func deviceName(path string) string {
	name, err := os.ReadFile(filepath.Join("/sys/class/input", filepath.Base(path), "device/name"))
	if err != nil {
		return path
	}
	return strings.TrimSpace(string(name))
}
