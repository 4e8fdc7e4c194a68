// Package scroll provides the scroll-control unit of the viewer host,
// exposing the view.scroll capability. It wires against the render pipeline
// and the zoom controller.
package scroll

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumenview/lumenview/plug/render"
	"github.com/lumenview/lumenview/plug/zoom"
	"github.com/lumenview/lumenview/plugins"
)

// Capability is the capability name this unit provides.
const Capability = "view.scroll"

const (
	pluginName = "scroll"
	pluginID   = "viewer.scroll"
	version    = "1.0.0"
)

// Scroll modes accepted by the "mode" configuration key.
const (
	ModeContinuous = "continuous"
	ModePaged      = "paged"
)

// Manifest returns the unit's static declaration.
func Manifest() plugins.Manifest {
	return plugins.Manifest{
		ID:       pluginID,
		Name:     "Scroll",
		Version:  version,
		Provides: []string{Capability},
		Consumes: []string{render.Capability, zoom.Capability},
		DefaultConfig: map[string]any{
			"mode":      ModeContinuous,
			"line_step": 3,
		},
	}
}

// Controller is the live scroll unit.
type Controller struct {
	host plugins.CapabilityLookup

	mu       sync.RWMutex
	zoom     plugins.Plugin
	mode     string
	lineStep int
}

// New is the unit factory registered with the host.
func New(host plugins.CapabilityLookup, engineHandle any) plugins.Plugin {
	return &Controller{host: host}
}

// ID implements plugins.Plugin.
func (c *Controller) ID() string { return pluginID }

// Initialize resolves the zoom provider and applies configuration.
func (c *Controller) Initialize(ctx context.Context, conf map[string]any) error {
	zoomUnit, err := c.host.GetCapabilityProvider(zoom.Capability)
	if err != nil {
		return err
	}

	mode := ModeContinuous
	if v, ok := conf["mode"].(string); ok {
		mode = v
	}
	if mode != ModeContinuous && mode != ModePaged {
		return fmt.Errorf("unknown scroll mode %q", mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoomUnit
	c.mode = mode
	c.lineStep = intValue(conf, "line_step", 3)
	return nil
}

// Mode returns the active scroll mode.
func (c *Controller) Mode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// LineStep returns how many text lines one scroll tick covers.
func (c *Controller) LineStep() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lineStep
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
