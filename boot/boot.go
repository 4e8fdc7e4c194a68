// Package boot composes a Lumenview host: it loads the optional host
// configuration file, constructs the registry around the embedder's engine
// handle, registers every unit known to the plugin factory, and runs the
// activation pass.
package boot

import (
	"context"
	"maps"

	lumenview "github.com/lumenview/lumenview"
	"github.com/lumenview/lumenview/engine"
	"github.com/lumenview/lumenview/events"
	"github.com/lumenview/lumenview/factory"
)

// Boot collects everything needed to bring a host up.
type Boot struct {
	engine   any
	confPath string
	bus      *events.Bus
	factory  *factory.PluginFactory
}

// Option configures a Boot.
type Option func(*Boot)

// WithEngine supplies the execution-engine handle passed through to unit
// factories. Defaults to engine.Noop.
func WithEngine(engineHandle any) Option {
	return func(b *Boot) { b.engine = engineHandle }
}

// WithConfigFile points the boot at a yaml host configuration file.
func WithConfigFile(path string) Option {
	return func(b *Boot) { b.confPath = path }
}

// WithEventBus makes the registry emit lifecycle events on bus.
func WithEventBus(bus *events.Bus) Option {
	return func(b *Boot) { b.bus = bus }
}

// WithFactory uses a specific plugin factory instead of the global one.
// Mostly useful in tests.
func WithFactory(f *factory.PluginFactory) Option {
	return func(b *Boot) { b.factory = f }
}

// New creates a Boot with the given options applied.
func New(opts ...Option) *Boot {
	b := &Boot{
		engine:  engine.Noop{},
		factory: factory.GlobalPluginFactory(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run builds, registers, and activates the host, returning the live
// registry. Every plugin known to the factory is registered in factory
// registration order; per-plugin overrides from the configuration file win
// over creator-supplied base overrides, key by key.
func (b *Boot) Run(ctx context.Context) (*lumenview.Registry, error) {
	overrides, err := b.loadOverrides()
	if err != nil {
		return nil, err
	}

	var opts []lumenview.Option
	if b.bus != nil {
		opts = append(opts, lumenview.WithEventBus(b.bus))
	}
	reg, err := lumenview.NewRegistry(b.engine, opts...)
	if err != nil {
		return nil, err
	}

	names := b.factory.Names()
	regs := make([]lumenview.Registration, 0, len(names))
	for _, name := range names {
		m, fac, conf, err := b.factory.Create(name)
		if err != nil {
			return nil, err
		}
		if fileConf, ok := overrides[m.ID]; ok {
			merged := make(map[string]any, len(conf)+len(fileConf))
			maps.Copy(merged, conf)
			maps.Copy(merged, fileConf)
			conf = merged
		}
		regs = append(regs, lumenview.Registration{Manifest: m, Factory: fac, Config: conf})
	}

	if err := reg.RegisterBatch(regs); err != nil {
		return nil, err
	}
	if err := reg.Activate(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}
