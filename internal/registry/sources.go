package registry

import (
	_ "github.com/maus-dev/maus/internal/source/evdev"  // Register evdev source
	_ "github.com/maus-dev/maus/internal/source/hidraw" // Register hidraw source
)
