package lumenview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenview/lumenview/plugins"
)

func TestUnregisterDependentsSafety(t *testing.T) {
	r := newTestRegistry(t)
	a := &testUnit{id: "A"}
	b := &testUnit{id: "B"}
	require.NoError(t, r.Register(unitReg(a, mf("A", []string{"x"}, nil, nil), nil)))
	require.NoError(t, r.Register(unitReg(b, mf("B", []string{"y"}, []string{"x"}, nil), nil)))
	require.NoError(t, r.Activate(context.Background()))

	// B still consumes x: removing A must fail and leave both untouched.
	err := r.Unregister(context.Background(), "A")
	require.Error(t, err)
	assert.ErrorIs(t, err, plugins.ErrPluginHasDependents)
	assert.Contains(t, err.Error(), `"x"`)
	assert.Contains(t, err.Error(), "B")
	assert.Zero(t, a.destroys)

	for _, id := range []string{"A", "B"} {
		status, serr := r.GetPluginStatus(id)
		require.NoError(t, serr)
		assert.Equal(t, plugins.StatusActive, status)
	}

	// Dependent-first removal works.
	require.NoError(t, r.Unregister(context.Background(), "B"))
	assert.Equal(t, 1, b.destroys)
	assert.False(t, r.HasCapability("y"))

	require.NoError(t, r.Unregister(context.Background(), "A"))
	assert.Equal(t, 1, a.destroys)
	assert.False(t, r.HasCapability("x"))
	_, err = r.GetPlugin("A")
	assert.ErrorIs(t, err, plugins.ErrPluginNotFound)
}

func TestUnregisterDestroyFailureStillRemoves(t *testing.T) {
	r := newTestRegistry(t)
	boom := errors.New("teardown failed")
	a := &testUnit{id: "A", destroyErr: boom}
	require.NoError(t, r.Register(unitReg(a, mf("A", []string{"x"}, nil, nil), nil)))
	require.NoError(t, r.Activate(context.Background()))

	err := r.Unregister(context.Background(), "A")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// No rollback for destroy: the plugin is gone despite the error.
	_, err = r.GetPlugin("A")
	assert.ErrorIs(t, err, plugins.ErrPluginNotFound)
	assert.False(t, r.HasCapability("x"))
}

func TestUnregisterWithoutDestroyHook(t *testing.T) {
	r := newTestRegistry(t)
	reg := Registration{
		Manifest: mf("plain", []string{"cap"}, nil, nil),
		Factory: func(host plugins.CapabilityLookup, eng any) plugins.Plugin {
			return &bareUnit{id: "plain"}
		},
	}
	require.NoError(t, r.Register(reg))
	require.NoError(t, r.Activate(context.Background()))

	require.NoError(t, r.Unregister(context.Background(), "plain"))
	assert.Empty(t, r.GetAllPlugins())
}
