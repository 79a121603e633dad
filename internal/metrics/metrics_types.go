// Package metrics exposes the size and outcome of each build as Prometheus
// metrics. Each run owns its own registry; nothing is registered globally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fogtopo"

// Registry holds all metrics of one run.
type Registry struct {
	// Topology
	TopologyNodes     *prometheus.GaugeVec
	TopologySensors   prometheus.Gauge
	TopologyActuators prometheus.Gauge

	// Application graph
	AppModules     prometheus.Gauge
	AppEdges       *prometheus.GaugeVec
	AppSelectivity prometheus.Gauge
	AppLoops       prometheus.Gauge

	// Mapping
	MappingAssignments *prometheus.GaugeVec

	// Build outcome
	BuildFailures *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initTopologyMetrics()
	r.initAppMetrics()
	r.initBuildMetrics()
	return r
}

// Gatherer returns the underlying Prometheus gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Registry) initTopologyMetrics() {
	r.TopologyNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "topology_nodes",
			Help:      "Number of fog nodes per tree level",
		},
		[]string{"level"},
	)

	r.TopologySensors = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "topology_sensors",
			Help:      "Number of sensors attached to the topology",
		},
	)

	r.TopologyActuators = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "topology_actuators",
			Help:      "Number of actuators attached to the topology",
		},
	)
}

func (r *Registry) initAppMetrics() {
	r.AppModules = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "app_modules",
			Help:      "Number of modules in the application graph",
		},
	)

	r.AppEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "app_edges",
			Help:      "Number of application edges by kind",
		},
		[]string{"kind"},
	)

	r.AppSelectivity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "app_selectivity_rules",
			Help:      "Number of selectivity rules",
		},
	)

	r.AppLoops = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "app_loops",
			Help:      "Number of monitored loops",
		},
	)

	r.MappingAssignments = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mapping_assignments",
			Help:      "Number of pinned devices per module",
		},
		[]string{"module"},
	)
}

func (r *Registry) initBuildMetrics() {
	r.BuildFailures = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_failures_total",
			Help:      "Builds aborted, by error kind",
		},
		[]string{"kind"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each build stage in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
		[]string{"stage"},
	)
}
