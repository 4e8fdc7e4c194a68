package lumenview

import (
	"context"
	"fmt"
	"maps"

	"github.com/lumenview/lumenview/events"
	"github.com/lumenview/lumenview/log"
	"github.com/lumenview/lumenview/plugins"
)

// mergeConfig shallowly merges override over base into a fresh map. Override
// keys take precedence; nested values are not merged.
func mergeConfig(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	maps.Copy(merged, base)
	maps.Copy(merged, override)
	return merged
}

// validateConfig checks that every key declared in the unit's default
// configuration survived the merge. A default-declared key silently absent
// from the final config is a configuration error; override-supplied keys
// with no default pass through without validation.
func validateConfig(pluginID string, defaults, merged map[string]any) error {
	for key := range defaults {
		if _, ok := merged[key]; !ok {
			return plugins.NewPluginError(pluginID, "configure",
				fmt.Sprintf("configuration key %q declared in defaults is missing", key),
				plugins.ErrInvalidPluginConfig)
		}
	}
	return nil
}

// UpdatePluginConfig merges partial over the unit's current resolved
// configuration (shallow, partial wins), re-validates it against the
// manifest's default-config key set, stores it, and re-invokes the unit's
// initialize hook with the new configuration. The hook decides whether the
// re-invocation is an idempotent reconfiguration or a restart; the registry
// does not special-case it, and it does not re-check capability
// availability.
func (r *Registry) UpdatePluginConfig(ctx context.Context, id string, partial map[string]any) error {
	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	r.mu.RLock()
	current, okConf := r.configs[id]
	m, okMan := r.manifests[id]
	inst := r.instances[id]
	r.mu.RUnlock()

	if !okConf || !okMan {
		return plugins.NewPluginError(id, "configure", "no such plugin", plugins.ErrPluginNotFound)
	}

	merged := mergeConfig(current, partial)
	if err := validateConfig(id, m.DefaultConfig, merged); err != nil {
		return err
	}

	r.mu.Lock()
	r.configs[id] = merged
	r.mu.Unlock()

	if hook, ok := inst.(plugins.Initializer); ok {
		if err := hook.Initialize(ctx, maps.Clone(merged)); err != nil {
			return plugins.NewPluginError(id, "configure",
				"initialize hook rejected new configuration", err)
		}
	}

	r.bus.Emit(events.Event{Type: events.EventPluginConfigUpdated, PluginID: id})
	log.Infof("plugin %s reconfigured", id)
	return nil
}
