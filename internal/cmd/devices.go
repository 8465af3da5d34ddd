package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Devices lists input device nodes that look like pointing devices, so the
// right --source.path can be picked without guessing.
type Devices struct{}

// Run is called by kong when the devices command is executed.
func (d *Devices) Run(logger *slog.Logger) error {
	evdev := listEvdev()
	hidraw := listHidraw()

	if len(evdev) == 0 && len(hidraw) == 0 {
		fmt.Println("no input devices found (is this a Linux system, and are you in the input group?)")
		return nil
	}

	if len(evdev) > 0 {
		fmt.Println("evdev devices with relative axes (--source.type=evdev):")
		for _, l := range evdev {
			fmt.Println("  " + l)
		}
	}
	if len(hidraw) > 0 {
		fmt.Println("hidraw devices (--source.type=hidraw):")
		for _, l := range hidraw {
			fmt.Println("  " + l)
		}
	}
	return nil
}

// listEvdev scans sysfs for event nodes advertising EV_REL capability, the
// marker of a relative pointing device.
func listEvdev() []string {
	entries, err := filepath.Glob("/sys/class/input/event*")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		rel, err := os.ReadFile(filepath.Join(e, "device/capabilities/rel"))
		if err != nil || strings.TrimSpace(string(rel)) == "0" {
			continue
		}
		name := "?"
		if n, err := os.ReadFile(filepath.Join(e, "device/name")); err == nil {
			name = strings.TrimSpace(string(n))
		}
		out = append(out, fmt.Sprintf("/dev/input/%s  %s", filepath.Base(e), name))
	}
	sort.Strings(out)
	return out
}

// listHidraw scans sysfs for hidraw nodes and their HID names.
func listHidraw() []string {
	entries, err := filepath.Glob("/sys/class/hidraw/hidraw*")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := "?"
		if data, err := os.ReadFile(filepath.Join(e, "device/uevent")); err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				if v, ok := strings.CutPrefix(line, "HID_NAME="); ok {
					name = v
					break
				}
			}
		}
		out = append(out, fmt.Sprintf("/dev/%s  %s", filepath.Base(e), name))
	}
	sort.Strings(out)
	return out
}
