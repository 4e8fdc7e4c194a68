// Package lumenview implements the plugin host of an extensible document
// viewer: independent functional units (rendering, zoom, scrolling, page
// spreads, document loading) declare the capabilities they provide and
// consume, and the registry resolves a global load order from those purely
// local declarations, wires consumers to providers, and manages each unit's
// configuration and lifecycle.
//
// The registry activates exactly once. Before activation it accepts
// declarative registrations; the activation pass builds a dependency graph
// from capability declarations, orders it, and instantiates and initializes
// every unit strictly sequentially with per-unit rollback on failure. After
// activation the registry is the single directory collaborators use to look
// up units and capability providers.
package lumenview
