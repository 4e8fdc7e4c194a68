package lumenview

import (
	"context"
	"fmt"

	"github.com/lumenview/lumenview/events"
	"github.com/lumenview/lumenview/log"
	"github.com/lumenview/lumenview/metrics"
	"github.com/lumenview/lumenview/plugins"
)

// Unregister removes a unit from the registry: its provided-capability
// entries, its instance, and its manifest. It refuses to remove a unit whose
// provided capabilities are still consumed by another registered unit, so a
// still-wired consumer is never silently broken.
//
// The unit's destroy hook, if present, runs before removal. A destroy
// failure is wrapped and surfaced but not rolled back: the unit is removed
// from every table regardless of the hook's outcome. This is deliberately
// asymmetric with initialize, which does roll back.
func (r *Registry) Unregister(ctx context.Context, id string) error {
	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	r.mu.RLock()
	inst, okInst := r.instances[id]
	m, okMan := r.manifests[id]
	if !okInst || !okMan {
		r.mu.RUnlock()
		return plugins.NewPluginError(id, "unregister", "no such plugin", plugins.ErrPluginNotFound)
	}

	provided := make(map[string]bool, len(m.Provides))
	for _, c := range m.Provides {
		provided[c] = true
	}
	for otherID, other := range r.manifests {
		if otherID == id {
			continue
		}
		for _, c := range other.Consumes {
			if provided[c] {
				r.mu.RUnlock()
				return plugins.NewPluginError(id, "unregister",
					fmt.Sprintf("capability %q is still consumed by plugin %q", c, otherID),
					plugins.ErrPluginHasDependents)
			}
		}
	}
	wasActive := r.statuses[id] == plugins.StatusActive
	r.mu.RUnlock()

	var destroyErr error
	if hook, ok := inst.(plugins.Destroyer); ok {
		destroyErr = hook.Destroy(ctx)
	}

	r.mu.Lock()
	for _, c := range m.Provides {
		if r.capabilities[c] == id {
			delete(r.capabilities, c)
		}
	}
	delete(r.instances, id)
	delete(r.manifests, id)
	delete(r.statuses, id)
	delete(r.configs, id)
	r.mu.Unlock()

	if wasActive {
		metrics.ActivePlugins.Dec()
	}

	if destroyErr != nil {
		r.bus.Emit(events.Event{Type: events.EventPluginDestroyFailed, PluginID: id, Error: destroyErr})
		log.Errorf("plugin %s destroy hook failed (plugin removed anyway): %v", id, destroyErr)
		return plugins.NewPluginError(id, "destroy", "destroy hook failed", destroyErr)
	}

	r.bus.Emit(events.Event{Type: events.EventPluginUnregistered, PluginID: id})
	log.Infof("plugin %s unregistered", id)
	return nil
}
