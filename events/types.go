// Package events provides the in-process lifecycle event bus of the
// Lumenview host. The registry emits an event for every observable lifecycle
// transition; embedders subscribe to drive UI state, diagnostics, or tests.
package events

import "time"

// EventType identifies the kind of lifecycle transition an event reports.
type EventType string

const (
	// EventPluginRegistered is emitted when a pending registration is accepted.
	EventPluginRegistered EventType = "plugin.registered"

	// EventPluginInitializing is emitted just before a unit's initialize
	// hook runs; the unit's capabilities are already claimed at this point.
	EventPluginInitializing EventType = "plugin.initializing"

	// EventPluginStarted is emitted when a unit reaches the active state.
	EventPluginStarted EventType = "plugin.started"

	// EventPluginInitFailed is emitted after a unit's initialize hook failed
	// and its bookkeeping was rolled back.
	EventPluginInitFailed EventType = "plugin.init_failed"

	// EventPluginConfigUpdated is emitted after a live reconfiguration.
	EventPluginConfigUpdated EventType = "plugin.config_updated"

	// EventPluginUnregistered is emitted after a unit is removed.
	EventPluginUnregistered EventType = "plugin.unregistered"

	// EventPluginDestroyFailed is emitted when a destroy hook returned an
	// error; the unit is removed regardless.
	EventPluginDestroyFailed EventType = "plugin.destroy_failed"

	// EventRegistryActivated is emitted once, after a successful activation
	// pass.
	EventRegistryActivated EventType = "registry.activated"
)

// Event is a single lifecycle notification.
type Event struct {
	// ID uniquely identifies this event instance.
	ID string

	// Type indicates the specific kind of event that occurred.
	Type EventType

	// PluginID identifies the plugin the event concerns. Empty for
	// registry-level events.
	PluginID string

	// Error carries failure information for *_failed event types.
	Error error

	// Metadata contains additional event-specific information.
	Metadata map[string]any

	// Timestamp records when the event occurred.
	Timestamp time.Time
}

// Listener receives events synchronously, in emission order. A listener must
// not block; long work belongs on the listener's own goroutine.
type Listener func(Event)
