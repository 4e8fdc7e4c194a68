package lumenview_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lumenview "github.com/lumenview/lumenview"
	"github.com/lumenview/lumenview/engine"
	"github.com/lumenview/lumenview/plug/loader"
	"github.com/lumenview/lumenview/plug/render"
	"github.com/lumenview/lumenview/plug/scroll"
	"github.com/lumenview/lumenview/plug/spread"
	"github.com/lumenview/lumenview/plug/zoom"
	"github.com/lumenview/lumenview/plugins"
)

// Activates the real viewer units end to end, registered in an order that
// forces the resolver to untangle the capability chain.
func TestViewerChainActivation(t *testing.T) {
	reg, err := lumenview.NewRegistry(engine.Noop{})
	require.NoError(t, err)

	// Deliberately register consumers before their providers.
	units := []lumenview.Registration{
		{Manifest: spread.Manifest(), Factory: spread.New},
		{Manifest: scroll.Manifest(), Factory: scroll.New},
		{Manifest: zoom.Manifest(), Factory: zoom.New},
		{Manifest: render.Manifest(), Factory: render.New},
		{Manifest: loader.Manifest(), Factory: loader.New},
	}
	require.NoError(t, reg.RegisterBatch(units))
	require.NoError(t, reg.Activate(context.Background()))

	all := reg.GetAllPlugins()
	assert.Len(t, all, 5)
	for id := range all {
		st, err := reg.GetPluginStatus(id)
		require.NoError(t, err)
		assert.Equal(t, plugins.StatusActive, st, id)
	}

	for _, cap := range []string{
		loader.Capability, render.Capability, zoom.Capability,
		scroll.Capability, spread.Capability,
	} {
		assert.True(t, reg.HasCapability(cap), cap)
	}

	p, err := reg.GetCapabilityProvider(render.Capability)
	require.NoError(t, err)
	pipe, ok := p.(*render.Pipeline)
	require.True(t, ok)
	assert.Equal(t, 96, pipe.DPI())
	require.NotNil(t, pipe.Loader())
	assert.Equal(t, loader.Manifest().ID, pipe.Loader().ID())
}

func TestViewerChainConfigOverrides(t *testing.T) {
	reg, err := lumenview.NewRegistry(engine.Noop{})
	require.NoError(t, err)

	units := []lumenview.Registration{
		{Manifest: loader.Manifest(), Factory: loader.New},
		{Manifest: render.Manifest(), Factory: render.New, Config: map[string]any{"dpi": 144}},
		{Manifest: zoom.Manifest(), Factory: zoom.New, Config: map[string]any{"step": 0.5}},
		{Manifest: scroll.Manifest(), Factory: scroll.New},
		{Manifest: spread.Manifest(), Factory: spread.New},
	}
	require.NoError(t, reg.RegisterBatch(units))
	require.NoError(t, reg.Activate(context.Background()))

	p, err := reg.GetCapabilityProvider(render.Capability)
	require.NoError(t, err)
	assert.Equal(t, 144, p.(*render.Pipeline).DPI())
	// Untouched default keys survive the override.
	assert.Equal(t, 512, p.(*render.Pipeline).TileSize())

	z, err := reg.GetCapabilityProvider(zoom.Capability)
	require.NoError(t, err)
	ctrl := z.(*zoom.Controller)
	assert.InDelta(t, 1.0, ctrl.Factor(), 1e-9)
	assert.InDelta(t, 1.5, ctrl.ZoomIn(), 1e-9)
}

func TestViewerChainReconfigure(t *testing.T) {
	reg, err := lumenview.NewRegistry(engine.Noop{})
	require.NoError(t, err)

	units := []lumenview.Registration{
		{Manifest: loader.Manifest(), Factory: loader.New},
		{Manifest: render.Manifest(), Factory: render.New},
		{Manifest: zoom.Manifest(), Factory: zoom.New},
		{Manifest: scroll.Manifest(), Factory: scroll.New},
		{Manifest: spread.Manifest(), Factory: spread.New},
	}
	require.NoError(t, reg.RegisterBatch(units))
	require.NoError(t, reg.Activate(context.Background()))

	scrollID := scroll.Manifest().ID
	require.NoError(t, reg.UpdatePluginConfig(context.Background(), scrollID, map[string]any{
		"mode": scroll.ModePaged,
	}))
	s, err := reg.GetCapabilityProvider(scroll.Capability)
	require.NoError(t, err)
	assert.Equal(t, scroll.ModePaged, s.(*scroll.Controller).Mode())
	// line_step came from the defaults and stays merged in.
	assert.Equal(t, 3, s.(*scroll.Controller).LineStep())

	// A reconfigure that fails unit validation reports the hook error.
	err = reg.UpdatePluginConfig(context.Background(), scrollID, map[string]any{
		"mode": "diagonal",
	})
	require.Error(t, err)
}

func TestViewerChainUnregisterOrder(t *testing.T) {
	reg, err := lumenview.NewRegistry(engine.Noop{})
	require.NoError(t, err)

	units := []lumenview.Registration{
		{Manifest: loader.Manifest(), Factory: loader.New},
		{Manifest: render.Manifest(), Factory: render.New},
		{Manifest: zoom.Manifest(), Factory: zoom.New},
		{Manifest: scroll.Manifest(), Factory: scroll.New},
		{Manifest: spread.Manifest(), Factory: spread.New},
	}
	require.NoError(t, reg.RegisterBatch(units))
	require.NoError(t, reg.Activate(context.Background()))

	// The loader still has the render pipeline depending on it.
	err = reg.Unregister(context.Background(), loader.Manifest().ID)
	require.ErrorIs(t, err, plugins.ErrPluginHasDependents)
	assert.True(t, reg.HasCapability(loader.Capability))

	// Tearing down from the leaf inward succeeds.
	for _, id := range []string{
		spread.Manifest().ID, scroll.Manifest().ID, zoom.Manifest().ID,
		render.Manifest().ID, loader.Manifest().ID,
	} {
		require.NoError(t, reg.Unregister(context.Background(), id))
	}
	assert.Empty(t, reg.GetAllPlugins())
}
