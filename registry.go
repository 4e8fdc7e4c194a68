package lumenview

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/lumenview/lumenview/engine"
	"github.com/lumenview/lumenview/events"
	"github.com/lumenview/lumenview/log"
	"github.com/lumenview/lumenview/plugins"
)

// Registration is a declarative unit descriptor submitted before activation:
// the manifest, the factory producing the live instance, and an optional
// partial configuration override merged (shallowly) over the manifest's
// default configuration.
type Registration struct {
	Manifest plugins.Manifest
	Factory  plugins.Factory

	// Config overrides keys of the manifest's DefaultConfig. Keys absent
	// from the defaults pass through without validation.
	Config map[string]any
}

// pendingRegistration is the transient record held between registration and
// the single activation pass. Discarded after activation.
type pendingRegistration struct {
	manifest plugins.Manifest
	factory  plugins.Factory
	override map[string]any
}

// Registry orchestrates the full lifecycle of all units: declaration,
// dependency-aware activation, capability discovery, reconfiguration, and
// safe removal. All lookup tables are exclusively owned by the registry; the
// lookup API returns snapshots, never live references to internal state.
type Registry struct {
	// lifecycleMu serializes mutating operations so at most one unit
	// lifecycle step is in flight at any time. Plugin hooks run with only
	// this lock held, so a hook may call back into the lookup API.
	lifecycleMu sync.Mutex

	// mu guards the maps below plus the activated flag.
	mu sync.RWMutex

	engine any
	bus    *events.Bus

	// activating closes the registration window when the activation pass
	// begins; activated marks a completed pass. Both are one-way.
	activating bool
	activated  bool
	pending    []pendingRegistration

	instances    map[string]plugins.Plugin
	manifests    map[string]plugins.Manifest
	statuses     map[string]plugins.PluginStatus
	configs      map[string]map[string]any
	capabilities map[string]string // capability name -> providing unit id
}

// The registry is the capability lookup surface handed to plugin factories.
var _ plugins.CapabilityLookup = (*Registry)(nil)

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithEventBus makes the registry emit lifecycle events on bus instead of a
// private one.
func WithEventBus(bus *events.Bus) Option {
	return func(r *Registry) {
		if bus != nil {
			r.bus = bus
		}
	}
}

// NewRegistry creates a registry around the given execution-engine handle.
// The handle is opaque to the registry: if it implements engine.Initializer
// it is initialized exactly once, here; afterwards it is only passed through
// to unit factories unchanged.
func NewRegistry(engineHandle any, opts ...Option) (*Registry, error) {
	r := &Registry{
		engine:       engineHandle,
		instances:    make(map[string]plugins.Plugin),
		manifests:    make(map[string]plugins.Manifest),
		statuses:     make(map[string]plugins.PluginStatus),
		configs:      make(map[string]map[string]any),
		capabilities: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.bus == nil {
		r.bus = events.NewBus()
	}

	if init, ok := engineHandle.(engine.Initializer); ok {
		if err := init.Initialize(); err != nil {
			return nil, fmt.Errorf("engine initialization failed: %w", err)
		}
	}
	return r, nil
}

// Events returns the registry's lifecycle event bus.
func (r *Registry) Events() *events.Bus {
	return r.bus
}

// Register validates the manifest structurally and stores the descriptor as
// a pending registration. It has no other observable side effect: no
// instance is created and no capability claimed until the activation pass.
// Registration closes once the activation pass begins; this registry
// activates exactly once.
func (r *Registry) Register(reg Registration) error {
	if err := reg.Manifest.Validate(); err != nil {
		return err
	}
	if reg.Factory == nil {
		return plugins.NewPluginError(reg.Manifest.ID, "register",
			"registration has no factory", plugins.ErrInvalidManifest)
	}

	r.mu.Lock()
	if r.activated || r.activating {
		r.mu.Unlock()
		return plugins.NewPluginError(reg.Manifest.ID, "register",
			"registry activates exactly once", plugins.ErrRegistryActivated)
	}
	for _, p := range r.pending {
		if p.manifest.ID == reg.Manifest.ID {
			r.mu.Unlock()
			return plugins.NewPluginError(reg.Manifest.ID, "register",
				"id already pending registration", plugins.ErrPluginAlreadyExists)
		}
	}

	r.pending = append(r.pending, pendingRegistration{
		manifest: cloneManifest(reg.Manifest),
		factory:  reg.Factory,
		override: maps.Clone(reg.Config),
	})
	r.mu.Unlock()

	// Emit outside mu: listeners run synchronously and may call back into
	// the lookup API.
	r.bus.Emit(events.Event{Type: events.EventPluginRegistered, PluginID: reg.Manifest.ID})
	log.Debugf("plugin %s registered (provides %v, consumes %v)",
		reg.Manifest.ID, reg.Manifest.Provides, reg.Manifest.Consumes)
	return nil
}

// RegisterBatch registers each entry in sequence, short-circuiting on the
// first failure. Register itself has no side effects to undo, so there is no
// partial-batch rollback to perform.
func (r *Registry) RegisterBatch(regs []Registration) error {
	for _, reg := range regs {
		if err := r.Register(reg); err != nil {
			return err
		}
	}
	return nil
}

// GetPlugin returns the live instance registered under id.
func (r *Registry) GetPlugin(id string) (plugins.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inst, ok := r.instances[id]
	if !ok {
		return nil, plugins.NewPluginError(id, "lookup", "no such plugin", plugins.ErrPluginNotFound)
	}
	return inst, nil
}

// GetCapabilityProvider returns the instance of the unit providing the named
// capability. The shape of the instance is capability-specific; asserting it
// to the wrong type is a caller bug.
func (r *Registry) GetCapabilityProvider(capability string) (plugins.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.capabilities[capability]
	if !ok {
		return nil, plugins.NewPluginError("", "lookup",
			fmt.Sprintf("capability %q has no provider", capability), plugins.ErrCapabilityNotFound)
	}
	inst, ok := r.instances[id]
	if !ok {
		return nil, plugins.NewPluginError(id, "lookup",
			fmt.Sprintf("capability %q maps to a missing plugin", capability), plugins.ErrPluginNotFound)
	}
	return inst, nil
}

// HasCapability reports whether the named capability has a live provider.
func (r *Registry) HasCapability(capability string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.capabilities[capability]
	return ok
}

// GetAllPlugins returns a snapshot copy of the unit table.
func (r *Registry) GetAllPlugins() map[string]plugins.Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.instances)
}

// GetPluginStatus returns the lifecycle status of the unit registered under
// id.
func (r *Registry) GetPluginStatus(id string) (plugins.PluginStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status, ok := r.statuses[id]
	if !ok {
		return plugins.StatusUnregistered,
			plugins.NewPluginError(id, "lookup", "no such plugin", plugins.ErrPluginNotFound)
	}
	return status, nil
}

// GetPluginConfig returns a snapshot copy of the unit's resolved
// configuration.
func (r *Registry) GetPluginConfig(id string) (map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conf, ok := r.configs[id]
	if !ok {
		return nil, plugins.NewPluginError(id, "lookup", "no such plugin", plugins.ErrPluginNotFound)
	}
	return maps.Clone(conf), nil
}

// cloneManifest deep-copies the slices and the default-config map so that no
// caller-held reference can mutate registry state after registration.
func cloneManifest(m plugins.Manifest) plugins.Manifest {
	m.Provides = slices.Clone(m.Provides)
	m.Consumes = slices.Clone(m.Consumes)
	m.DefaultConfig = maps.Clone(m.DefaultConfig)
	return m
}
