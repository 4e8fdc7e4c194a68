// Package plugins provides the core contracts of the Lumenview plugin system:
// the unit manifest, the live plugin instance interface, the capability lookup
// surface handed to plugin factories, and the dependency resolver used by the
// host registry to compute a load order.
package plugins

import (
	"context"
)

// PluginStatus represents the current lifecycle state of a plugin in the host.
type PluginStatus int

const (
	// StatusUnregistered indicates the plugin is not (or no longer) known to
	// the registry. This is both the initial and the terminal state.
	StatusUnregistered PluginStatus = iota

	// StatusRegistered indicates the plugin instance has been created and its
	// capabilities claimed, but its initialize hook has not completed yet.
	StatusRegistered

	// StatusActive indicates the plugin is fully operational.
	StatusActive
)

// String returns a human-readable name for the status.
func (s PluginStatus) String() string {
	switch s {
	case StatusUnregistered:
		return "unregistered"
	case StatusRegistered:
		return "registered"
	case StatusActive:
		return "active"
	default:
		return "unknown"
	}
}

// Plugin is the minimal interface every live unit instance must implement.
// Instances are created exactly once per manifest during the activation pass
// and are owned by the registry for their entire lifetime.
type Plugin interface {
	// ID returns the unique identifier of the plugin. It must be non-empty;
	// the registry rejects instances without an identity.
	ID() string
}

// Initializer is the optional asynchronous setup hook of a plugin instance.
// The registry invokes it with the plugin's resolved configuration after the
// plugin's capabilities have been claimed, and again on every live
// reconfiguration. The hook may block; the registry imposes no timeout.
type Initializer interface {
	Initialize(ctx context.Context, conf map[string]any) error
}

// Destroyer is the optional teardown hook of a plugin instance, invoked by
// the registry during unregistration. The hook may block.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// CapabilityLookup is the narrow registry surface passed to plugin factories
// and available to any collaborator that needs to discover capability
// providers. The shape of a returned instance is capability-specific;
// asserting it to the wrong type is a caller bug, not a checked contract.
type CapabilityLookup interface {
	// GetPlugin returns the live instance registered under id.
	GetPlugin(id string) (Plugin, error)

	// GetCapabilityProvider returns the instance of the unit providing the
	// named capability.
	GetCapabilityProvider(capability string) (Plugin, error)

	// HasCapability reports whether the named capability has a live provider.
	HasCapability(capability string) bool
}

// Factory produces a live plugin instance. It receives the host's capability
// lookup surface and the shared execution-engine handle; both are valid for
// the lifetime of the instance. A factory must not block and must not touch
// the engine beyond storing the handle.
type Factory func(host CapabilityLookup, engine any) Plugin
