package source

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a source factory available under the given name.
// Names are case-insensitive. Registering the same name twice panics;
// registration happens from init functions, so that is a programming error.
func Register(name string, f Factory) {
	key := strings.ToLower(name)
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[key]; ok {
		panic("source: duplicate registration for " + key)
	}
	registry[key] = f
}

// Get returns the factory registered under name, or nil.
func Get(name string) Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[strings.ToLower(name)]
}

// Names returns the registered source names.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

// Open builds the source selected by cfg.Type.
func Open(cfg Config, logger *slog.Logger) (Source, error) {
	f := Get(cfg.Type)
	if f == nil {
		return nil, fmt.Errorf("unknown source type %q (registered: %s)",
			cfg.Type, strings.Join(Names(), ", "))
	}
	return f(cfg, logger)
}
