// Package engine defines the execution-engine handle contract. The handle is
// an opaque collaborator owned by the registry's creator: the registry probes
// it once for optional initialization at construction time and otherwise only
// passes it through to plugin factories unchanged. Units treat the handle as
// read/invoke-only.
package engine

// Initializer is the optional one-time setup hook of an engine handle. When
// the handle implements it, the registry invokes Initialize exactly once at
// construction time.
type Initializer interface {
	Initialize() error
}

// Noop is an engine handle that does nothing. Useful for tests and for
// embedders whose plugins need no shared engine.
type Noop struct{}
