// Package metric provides Prometheus metrics for the GraphQL API.
//
// The registry tracks the two activities that matter operationally:
// GraphQL operation resolution (count, duration, outcome) and the portal
// backend calls those resolutions fan out into.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "graphql_api"

// Metrics contains all service-level metrics
type Metrics struct {
	// GraphQL operation metrics
	OperationsTotal     *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
	ResolverErrorsTotal *prometheus.CounterVec

	// Portal backend metrics
	BackendCallsTotal   *prometheus.CounterVec
	BackendCallDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all service metrics
func NewMetrics() *Metrics {
	return &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "operations",
				Name:      "total",
				Help:      "Total number of GraphQL operations resolved",
			},
			[]string{"operation", "status"},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "operations",
				Name:      "duration_seconds",
				Help:      "GraphQL operation resolution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		ResolverErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "resolvers",
				Name:      "errors_total",
				Help:      "Total number of field-level resolution errors",
			},
			[]string{"operation", "class"},
		),

		BackendCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "calls_total",
				Help:      "Total number of portal backend calls",
			},
			[]string{"call", "status"},
		),

		BackendCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "call_duration_seconds",
				Help:      "Portal backend call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"call"},
		),
	}
}

// Registry manages the registration and lifecycle of metrics
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

// NewRegistry creates a new metrics registry with core service metrics
// plus Go runtime collectors.
func NewRegistry() *Registry {
	prometheusRegistry := prometheus.NewRegistry()

	registry := &Registry{
		prometheusRegistry: prometheusRegistry,
		Metrics:            NewMetrics(),
	}

	prometheusRegistry.MustRegister(
		registry.Metrics.OperationsTotal,
		registry.Metrics.OperationDuration,
		registry.Metrics.ResolverErrorsTotal,
		registry.Metrics.BackendCallsTotal,
		registry.Metrics.BackendCallDuration,
	)

	prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// PrometheusRegistry returns the underlying prometheus registry
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}
