// Package factory provides the global plugin factory registry. Plug packages
// register a creator under a stable name from their init function; the boot
// layer drains the registry into declarative registrations for the host.
package factory

import (
	"fmt"
	"sync"

	"github.com/lumenview/lumenview/plugins"
)

// Creator produces a unit's manifest, its instance factory, and an optional
// base configuration override. It is invoked once per boot.
type Creator func() (plugins.Manifest, plugins.Factory, map[string]any)

var (
	globalPluginFactory *PluginFactory
	once                sync.Once
)

// GlobalPluginFactory returns the process-wide factory registry singleton.
func GlobalPluginFactory() *PluginFactory {
	once.Do(func() {
		globalPluginFactory = NewPluginFactory()
	})
	return globalPluginFactory
}

// PluginFactory maps plugin names to their creation functions and groups
// them by the capability prefix they serve.
type PluginFactory struct {
	mu sync.RWMutex

	// names preserves registration order so boot-time registration is
	// deterministic for equal builds.
	names    []string
	creators map[string]Creator

	// prefixToNames maps capability prefixes to plugin names.
	// Example: "view" -> ["zoom", "scroll", "spread"]
	prefixToNames map[string][]string
}

// NewPluginFactory initializes an empty factory registry.
func NewPluginFactory() *PluginFactory {
	return &PluginFactory{
		creators:      make(map[string]Creator),
		prefixToNames: make(map[string][]string),
	}
}

// Register registers a plugin creator under name, grouped by capability
// prefix. Panics if the name is already taken: duplicate registration is a
// programming error in a plug package, not a runtime condition.
func (f *PluginFactory) Register(name, capabilityPrefix string, creator Creator) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.creators[name]; exists {
		panic(fmt.Errorf("plugin already registered: %s", name))
	}
	f.creators[name] = creator
	f.names = append(f.names, name)
	f.prefixToNames[capabilityPrefix] = append(f.prefixToNames[capabilityPrefix], name)
}

// Unregister removes a plugin creator. Mostly useful in tests.
func (f *PluginFactory) Unregister(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.creators[name]; !exists {
		return
	}
	delete(f.creators, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
	for prefix, names := range f.prefixToNames {
		for i, n := range names {
			if n == name {
				f.prefixToNames[prefix] = append(names[:i], names[i+1:]...)
				if len(f.prefixToNames[prefix]) == 0 {
					delete(f.prefixToNames, prefix)
				}
				break
			}
		}
	}
}

// Names returns the registered plugin names in registration order.
func (f *PluginFactory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// NamesForPrefix returns the plugin names registered under a capability
// prefix.
func (f *PluginFactory) NamesForPrefix(prefix string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := f.prefixToNames[prefix]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Has reports whether a plugin creator is registered under name.
func (f *PluginFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

// Create invokes the creator registered under name.
func (f *PluginFactory) Create(name string) (plugins.Manifest, plugins.Factory, map[string]any, error) {
	f.mu.RLock()
	creator, exists := f.creators[name]
	f.mu.RUnlock()

	if !exists {
		return plugins.Manifest{}, nil, nil, fmt.Errorf("plugin not found: %s", name)
	}
	m, fac, conf := creator()
	return m, fac, conf, nil
}
