// Package metrics exposes the host's prometheus collectors. All collectors
// are registered on the default registerer; embedders scrape them through
// their own promhttp handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ActivationsTotal counts successful activation passes. Because a
	// registry activates at most once, this effectively counts registries
	// brought up in the process.
	ActivationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lumenview",
		Name:      "registry_activations_total",
		Help:      "Number of successful registry activation passes.",
	})

	// ActivationFailuresTotal counts failed activation passes by reason.
	ActivationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lumenview",
		Name:      "registry_activation_failures_total",
		Help:      "Number of failed registry activation passes.",
	}, []string{"reason"})

	// RollbacksTotal counts per-unit rollbacks after a failed initialize hook.
	RollbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lumenview",
		Name:      "plugin_rollbacks_total",
		Help:      "Number of plugin activations rolled back after a failed initialize hook.",
	})

	// ActivePlugins tracks the number of currently active plugins.
	ActivePlugins = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lumenview",
		Name:      "active_plugins",
		Help:      "Number of plugins currently in the active state.",
	})

	// InitDuration observes per-plugin initialize hook durations.
	InitDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lumenview",
		Name:      "plugin_init_duration_seconds",
		Help:      "Duration of plugin initialize hooks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"plugin"})
)

func init() {
	prometheus.MustRegister(
		ActivationsTotal,
		ActivationFailuresTotal,
		RollbacksTotal,
		ActivePlugins,
		InitDuration,
	)
}

// Activation failure reasons used with ActivationFailuresTotal.
const (
	ReasonResolution = "resolution"
	ReasonConfig     = "config"
	ReasonCapability = "capability"
	ReasonInitHook   = "init_hook"
	ReasonInstance   = "instance"
)
