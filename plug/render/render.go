// Package render provides the render-pipeline unit of the viewer host. It
// wires against the document loader and exposes the render.pipeline
// capability the view units build on. Rasterization itself is the native
// engine's job; this unit carries pipeline policy only.
package render

import (
	"context"
	"sync"

	"github.com/lumenview/lumenview/plug/loader"
	"github.com/lumenview/lumenview/plugins"
)

// Capability is the capability name this unit provides.
const Capability = "render.pipeline"

const (
	pluginName = "render"
	pluginID   = "viewer.render"
	version    = "1.0.0"
)

// Manifest returns the unit's static declaration.
func Manifest() plugins.Manifest {
	return plugins.Manifest{
		ID:       pluginID,
		Name:     "Render Pipeline",
		Version:  version,
		Provides: []string{Capability},
		Consumes: []string{loader.Capability},
		DefaultConfig: map[string]any{
			"dpi":        96,
			"tile_size":  512,
			"annotation": true,
		},
	}
}

// Pipeline is the live render-pipeline unit.
type Pipeline struct {
	host   plugins.CapabilityLookup
	engine any

	mu         sync.RWMutex
	loader     plugins.Plugin
	dpi        int
	tileSize   int
	annotation bool
}

// New is the unit factory registered with the host.
func New(host plugins.CapabilityLookup, engineHandle any) plugins.Plugin {
	return &Pipeline{host: host, engine: engineHandle}
}

// ID implements plugins.Plugin.
func (p *Pipeline) ID() string { return pluginID }

// Initialize resolves the loader provider and applies configuration. The
// loader's capability is already claimed when this runs, even if the
// loader's own asynchronous setup has not finished yet.
func (p *Pipeline) Initialize(ctx context.Context, conf map[string]any) error {
	docLoader, err := p.host.GetCapabilityProvider(loader.Capability)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loader = docLoader
	p.dpi = intValue(conf, "dpi", 96)
	p.tileSize = intValue(conf, "tile_size", 512)
	if v, ok := conf["annotation"].(bool); ok {
		p.annotation = v
	}
	return nil
}

// Destroy releases the unit's state.
func (p *Pipeline) Destroy(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loader = nil
	return nil
}

// DPI returns the configured raster resolution.
func (p *Pipeline) DPI() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dpi
}

// TileSize returns the configured raster tile edge length.
func (p *Pipeline) TileSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tileSize
}

// Loader returns the wired document-loader instance.
func (p *Pipeline) Loader() plugins.Plugin {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loader
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
