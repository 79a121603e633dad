package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/fogtopo/internal/appgraph"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/mapping"
	"github.com/specialistvlad/fogtopo/internal/topology"
)

// RecordTopology records the shape of a built topology.
func (r *Registry) RecordTopology(t *topology.Topology) {
	r.TopologyNodes.Reset()
	for level, count := range t.CountByLevel() {
		r.TopologyNodes.WithLabelValues(strconv.Itoa(level)).Set(float64(count))
	}
	r.TopologySensors.Set(float64(len(t.Sensors())))
	r.TopologyActuators.Set(float64(len(t.Actuators())))
}

// RecordApplication records the size of a built application graph.
func (r *Registry) RecordApplication(app *appgraph.Application) {
	r.AppModules.Set(float64(len(app.Modules())))
	r.AppEdges.Reset()
	for _, e := range app.Edges() {
		r.AppEdges.WithLabelValues(e.Kind.String()).Inc()
	}
	r.AppSelectivity.Set(float64(len(app.Selectivity())))
	r.AppLoops.Set(float64(len(app.Loops())))
}

// RecordMapping records how many devices each module is pinned to.
func (r *Registry) RecordMapping(table *mapping.Table) {
	r.MappingAssignments.Reset()
	for module, devices := range table.ByModule() {
		r.MappingAssignments.WithLabelValues(module).Set(float64(len(devices)))
	}
}

// RecordFailure counts an aborted build under the error's kind, or "other"
// for untyped errors.
func (r *Registry) RecordFailure(err error) {
	kind := "other"
	if fe, ok := fogerr.As(err); ok {
		kind = fe.Kind.String()
	}
	r.BuildFailures.WithLabelValues(kind).Inc()
}

// ObserveStage records how long a build stage took.
func (r *Registry) ObserveStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteToTextfile writes every metric to path in the text exposition format.
func (r *Registry) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
