// Package zoom provides the zoom-control unit of the viewer host, exposing
// the view.zoom capability.
package zoom

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumenview/lumenview/plug/render"
	"github.com/lumenview/lumenview/plugins"
)

// Capability is the capability name this unit provides.
const Capability = "view.zoom"

const (
	pluginName = "zoom"
	pluginID   = "viewer.zoom"
	version    = "1.0.0"
)

// Manifest returns the unit's static declaration.
func Manifest() plugins.Manifest {
	return plugins.Manifest{
		ID:       pluginID,
		Name:     "Zoom",
		Version:  version,
		Provides: []string{Capability},
		Consumes: []string{render.Capability},
		DefaultConfig: map[string]any{
			"min":     0.25,
			"max":     4.0,
			"step":    0.25,
			"initial": 1.0,
		},
	}
}

// Controller is the live zoom unit.
type Controller struct {
	host plugins.CapabilityLookup

	mu     sync.RWMutex
	min    float64
	max    float64
	step   float64
	factor float64
}

// New is the unit factory registered with the host.
func New(host plugins.CapabilityLookup, engineHandle any) plugins.Plugin {
	return &Controller{host: host}
}

// ID implements plugins.Plugin.
func (c *Controller) ID() string { return pluginID }

// Initialize applies the resolved configuration. An inverted zoom range is a
// configuration mistake worth failing loudly on.
func (c *Controller) Initialize(ctx context.Context, conf map[string]any) error {
	minF := floatValue(conf, "min", 0.25)
	maxF := floatValue(conf, "max", 4.0)
	if minF <= 0 || maxF < minF {
		return fmt.Errorf("zoom range [%v, %v] is invalid", minF, maxF)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.min = minF
	c.max = maxF
	c.step = floatValue(conf, "step", 0.25)
	c.factor = clamp(floatValue(conf, "initial", 1.0), minF, maxF)
	return nil
}

// Factor returns the current zoom factor.
func (c *Controller) Factor() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.factor
}

// ZoomIn increases the zoom factor by one step, clamped to the range.
func (c *Controller) ZoomIn() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factor = clamp(c.factor+c.step, c.min, c.max)
	return c.factor
}

// ZoomOut decreases the zoom factor by one step, clamped to the range.
func (c *Controller) ZoomOut() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factor = clamp(c.factor-c.step, c.min, c.max)
	return c.factor
}

// SetFactor sets an absolute zoom factor, clamped to the range.
func (c *Controller) SetFactor(f float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factor = clamp(f, c.min, c.max)
	return c.factor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floatValue(conf map[string]any, key string, fallback float64) float64 {
	switch v := conf[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}
