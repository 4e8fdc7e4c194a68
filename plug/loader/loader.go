// Package loader provides the document-loading unit of the viewer host. It
// exposes the document.loader capability other units wire against. The unit
// manages loading policy only; actual document parsing belongs to the native
// engine behind the execution-engine handle.
package loader

import (
	"context"
	"sync"

	"github.com/lumenview/lumenview/plugins"
)

// Capability is the capability name this unit provides.
const Capability = "document.loader"

const (
	pluginName = "loader"
	pluginID   = "viewer.loader"
	version    = "1.0.0"
)

// Manifest returns the unit's static declaration.
func Manifest() plugins.Manifest {
	return plugins.Manifest{
		ID:       pluginID,
		Name:     "Document Loader",
		Version:  version,
		Provides: []string{Capability},
		DefaultConfig: map[string]any{
			"prefetch":    2,
			"cache_pages": 16,
		},
	}
}

// Loader is the live document-loading unit.
type Loader struct {
	host   plugins.CapabilityLookup
	engine any

	mu         sync.RWMutex
	prefetch   int
	cachePages int
}

// New is the unit factory registered with the host.
func New(host plugins.CapabilityLookup, engineHandle any) plugins.Plugin {
	return &Loader{host: host, engine: engineHandle}
}

// ID implements plugins.Plugin.
func (l *Loader) ID() string { return pluginID }

// Initialize applies the resolved configuration. Re-invoked on live
// reconfiguration.
func (l *Loader) Initialize(ctx context.Context, conf map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefetch = intValue(conf, "prefetch", 2)
	l.cachePages = intValue(conf, "cache_pages", 16)
	return nil
}

// Destroy releases the unit's state.
func (l *Loader) Destroy(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefetch = 0
	l.cachePages = 0
	return nil
}

// Prefetch returns how many pages ahead of the viewport the loader fetches.
func (l *Loader) Prefetch() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.prefetch
}

// CachePages returns how many decoded pages the loader retains.
func (l *Loader) CachePages() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cachePages
}

// intValue reads an integer configuration key, tolerating the float64 values
// yaml/json decoding produces.
func intValue(conf map[string]any, key string, fallback int) int {
	switch v := conf[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}
