// Package spread provides the page-spread layout unit of the viewer host,
// exposing the view.spread capability for two-up and book-style layouts.
package spread

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumenview/lumenview/plug/scroll"
	"github.com/lumenview/lumenview/plugins"
)

// Capability is the capability name this unit provides.
const Capability = "view.spread"

const (
	pluginName = "spread"
	pluginID   = "viewer.spread"
	version    = "1.0.0"
)

// Manifest returns the unit's static declaration.
func Manifest() plugins.Manifest {
	return plugins.Manifest{
		ID:       pluginID,
		Name:     "Page Spread",
		Version:  version,
		Provides: []string{Capability},
		Consumes: []string{scroll.Capability},
		DefaultConfig: map[string]any{
			"pages_per_spread": 2,
			"cover_alone":      true,
		},
	}
}

// Layout is the live page-spread unit.
type Layout struct {
	host plugins.CapabilityLookup

	mu             sync.RWMutex
	pagesPerSpread int
	coverAlone     bool
}

// New is the unit factory registered with the host.
func New(host plugins.CapabilityLookup, engineHandle any) plugins.Plugin {
	return &Layout{host: host}
}

// ID implements plugins.Plugin.
func (l *Layout) ID() string { return pluginID }

// Initialize applies the resolved configuration.
func (l *Layout) Initialize(ctx context.Context, conf map[string]any) error {
	pages := intValue(conf, "pages_per_spread", 2)
	if pages < 1 {
		return fmt.Errorf("pages_per_spread must be at least 1, got %d", pages)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pagesPerSpread = pages
	if v, ok := conf["cover_alone"].(bool); ok {
		l.coverAlone = v
	}
	return nil
}

// PagesPerSpread returns how many pages one spread holds.
func (l *Layout) PagesPerSpread() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pagesPerSpread
}

// SpreadIndex maps a zero-based page number to its spread index, honoring
// the cover-alone setting.
func (l *Layout) SpreadIndex(page int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if page < 0 || l.pagesPerSpread <= 1 {
		if page < 0 {
			return 0
		}
		return page
	}
	if l.coverAlone {
		if page == 0 {
			return 0
		}
		return 1 + (page-1)/l.pagesPerSpread
	}
	return page / l.pagesPerSpread
}

func intValue(conf map[string]any, key string, fallback int) int {
	switch v := conf[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}
