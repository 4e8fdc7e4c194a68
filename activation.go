package lumenview

import (
	"context"
	"fmt"
	"maps"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumenview/lumenview/events"
	"github.com/lumenview/lumenview/log"
	"github.com/lumenview/lumenview/metrics"
	"github.com/lumenview/lumenview/plugins"
)

var tracer = otel.Tracer("github.com/lumenview/lumenview")

// Activate performs the one-time activation pass: it infers dependency edges
// from capability declarations among the pending registrations, asks the
// resolver for a load order, then instantiates and starts each unit strictly
// sequentially in that order.
//
// A resolver failure aborts the pass before any side effect, with zero units
// active. A per-unit failure rolls back exactly that unit's bookkeeping and
// aborts the pass; units activated earlier remain active and queryable. A
// failed pass cannot be retried: the registration window closes when the
// pass begins and a second Activate call fails with ErrRegistryActivated,
// so callers must build a fresh registry to start over.
func (r *Registry) Activate(ctx context.Context) error {
	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	r.mu.Lock()
	if r.activated || r.activating {
		r.mu.Unlock()
		return plugins.NewPluginError("", "initialize",
			"registry activates exactly once", plugins.ErrRegistryActivated)
	}
	// Close the registration window now, not at the end of the pass: a
	// registration arriving mid-pass would be accepted and then silently
	// discarded with the pending bookkeeping.
	r.activating = true
	pending := r.pending
	r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "registry.activate",
		trace.WithAttributes(attribute.Int("plugins.pending", len(pending))))
	defer span.End()

	// Edge inference considers pending registrations only. Capability
	// uniqueness is enforced here, before any instantiation, so a collision
	// leaves zero units active.
	providers := make(map[string]string)
	for _, p := range pending {
		for _, c := range p.manifest.Provides {
			if owner, ok := providers[c]; ok {
				metrics.ActivationFailuresTotal.WithLabelValues(metrics.ReasonCapability).Inc()
				err := plugins.NewPluginError(p.manifest.ID, "initialize",
					fmt.Sprintf("capability %q is already provided by plugin %q", c, owner),
					plugins.ErrCapabilityConflict)
				span.RecordError(err)
				return err
			}
			providers[c] = p.manifest.ID
		}
	}

	resolver := plugins.NewDependencyResolver()
	byID := make(map[string]pendingRegistration, len(pending))
	for _, p := range pending {
		byID[p.manifest.ID] = p
		var deps []string
		for _, c := range p.manifest.Consumes {
			// A consumed capability with no pending provider is not an edge;
			// its absence is caught at instantiation time, not here.
			if providerID, ok := providers[c]; ok {
				deps = append(deps, providerID)
			}
		}
		resolver.AddNode(p.manifest.ID, deps)
	}

	order, err := resolver.ResolveLoadOrder()
	if err != nil {
		metrics.ActivationFailuresTotal.WithLabelValues(metrics.ReasonResolution).Inc()
		span.RecordError(err)
		return fmt.Errorf("dependency resolution failed: %w", err)
	}

	log.Infof("activating %d plugins in resolved order", len(order))
	for _, id := range order {
		if err := r.activateUnit(ctx, byID[id]); err != nil {
			span.RecordError(err)
			return err
		}
	}

	r.mu.Lock()
	r.activated = true
	r.pending = nil
	r.mu.Unlock()

	metrics.ActivationsTotal.Inc()
	r.bus.Emit(events.Event{
		Type:     events.EventRegistryActivated,
		Metadata: map[string]any{"plugins": len(order)},
	})
	log.Infof("registry activated with %d plugins", len(order))
	return nil
}

// activateUnit runs the per-unit activation sequence: instantiate, validate
// identity, merge and validate configuration, verify consumed capabilities,
// claim provided capabilities, record the unit, then run its initialize
// hook. The bookkeeping commits synchronously before the hook, so a later
// unit in the same pass may wire against this unit's capabilities even while
// its asynchronous setup is still in flight.
func (r *Registry) activateUnit(ctx context.Context, reg pendingRegistration) error {
	m := reg.manifest

	ctx, span := tracer.Start(ctx, "plugin.initialize",
		trace.WithAttributes(attribute.String("plugin.id", m.ID)))
	defer span.End()

	inst := reg.factory(r, r.engine)
	if inst == nil || inst.ID() == "" {
		metrics.ActivationFailuresTotal.WithLabelValues(metrics.ReasonInstance).Inc()
		return plugins.NewPluginError(m.ID, "initialize",
			"factory returned an instance without identity", plugins.ErrInvalidManifest)
	}

	conf := mergeConfig(m.DefaultConfig, reg.override)
	if err := validateConfig(m.ID, m.DefaultConfig, conf); err != nil {
		metrics.ActivationFailuresTotal.WithLabelValues(metrics.ReasonConfig).Inc()
		return err
	}

	r.mu.Lock()
	// The actual dangling-requirement check: every consumed capability must
	// already be claimed by an earlier unit in the pass.
	for _, c := range m.Consumes {
		if _, ok := r.capabilities[c]; !ok {
			r.mu.Unlock()
			metrics.ActivationFailuresTotal.WithLabelValues(metrics.ReasonCapability).Inc()
			return plugins.NewPluginError(m.ID, "initialize",
				fmt.Sprintf("required capability %q has no provider", c), plugins.ErrCapabilityNotMet)
		}
	}
	claimed := make([]string, 0, len(m.Provides))
	for _, c := range m.Provides {
		if owner, ok := r.capabilities[c]; ok {
			for _, cc := range claimed {
				delete(r.capabilities, cc)
			}
			r.mu.Unlock()
			metrics.ActivationFailuresTotal.WithLabelValues(metrics.ReasonCapability).Inc()
			return plugins.NewPluginError(m.ID, "initialize",
				fmt.Sprintf("capability %q is already provided by plugin %q", c, owner),
				plugins.ErrCapabilityConflict)
		}
		r.capabilities[c] = m.ID
		claimed = append(claimed, c)
	}
	r.instances[m.ID] = inst
	r.manifests[m.ID] = m
	r.statuses[m.ID] = plugins.StatusRegistered
	r.configs[m.ID] = conf
	r.mu.Unlock()

	r.bus.Emit(events.Event{Type: events.EventPluginInitializing, PluginID: m.ID})
	log.Debugf("initializing plugin %s (%s %s)", m.ID, m.Name, m.Version)

	start := time.Now()
	if hook, ok := inst.(plugins.Initializer); ok {
		if err := hook.Initialize(ctx, maps.Clone(conf)); err != nil {
			r.rollbackUnit(m.ID, claimed)
			metrics.RollbacksTotal.Inc()
			metrics.ActivationFailuresTotal.WithLabelValues(metrics.ReasonInitHook).Inc()
			r.bus.Emit(events.Event{Type: events.EventPluginInitFailed, PluginID: m.ID, Error: err})
			log.Errorf("plugin %s failed to initialize, rolled back: %v", m.ID, err)
			span.RecordError(err)
			return plugins.NewPluginError(m.ID, "initialize", "initialize hook failed", err)
		}
	}
	metrics.InitDuration.WithLabelValues(m.ID).Observe(time.Since(start).Seconds())

	r.mu.Lock()
	r.statuses[m.ID] = plugins.StatusActive
	r.mu.Unlock()
	metrics.ActivePlugins.Inc()

	r.bus.Emit(events.Event{Type: events.EventPluginStarted, PluginID: m.ID})
	log.Infof("plugin %s active", m.ID)
	return nil
}

// rollbackUnit undoes exactly one unit's side effects after a failed
// initialize hook: its capability claims, instance, manifest, status, and
// configuration. Units activated earlier in the pass are untouched.
func (r *Registry) rollbackUnit(id string, claimed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range claimed {
		delete(r.capabilities, c)
	}
	delete(r.instances, id)
	delete(r.manifests, id)
	delete(r.statuses, id)
	delete(r.configs, id)
}
