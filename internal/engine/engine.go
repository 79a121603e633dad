package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/fogtopo/internal/appgraph"
	"github.com/specialistvlad/fogtopo/internal/mapping"
	"github.com/specialistvlad/fogtopo/internal/topology"
)

// Placement names the strategy the engine uses for modules the mapping
// leaves unpinned.
type Placement string

const (
	// Edgewards pushes unpinned modules as close to the leaves as capacity
	// allows.
	Edgewards Placement = "edgewards"
	// MappingOnly places exactly what the mapping pins and nothing else.
	MappingOnly Placement = "mapping-only"
)

// Valid reports whether p is a known strategy.
func (p Placement) Valid() bool {
	return p == Edgewards || p == MappingOnly
}

// Deployment is everything one run hands to an Engine.
type Deployment struct {
	Topology    *topology.Topology
	Application *appgraph.Application
	Mapping     *mapping.Table
	Placement   Placement
}

// Engine consumes finalized deployments.
type Engine interface {
	Submit(ctx context.Context, d *Deployment) error
}

// Check verifies that the parts of a deployment belong together: every
// mapped module is declared and every mapped device exists under the
// recorded id.
func (d *Deployment) Check() error {
	if d == nil || d.Topology == nil || d.Application == nil || d.Mapping == nil {
		return fmt.Errorf("incomplete deployment")
	}
	if !d.Placement.Valid() {
		return fmt.Errorf("unknown placement strategy %q", d.Placement)
	}
	for _, a := range d.Mapping.Assignments() {
		if !d.Application.HasModule(a.Module) {
			return fmt.Errorf("assignment %s@%s: module is not part of application %q", a.Module, a.Device, d.Application.ID())
		}
		n, ok := d.Topology.Node(a.DeviceID)
		if !ok || n.Name != a.Device {
			return fmt.Errorf("assignment %s@%s: device id %d does not match the topology", a.Module, a.Device, a.DeviceID)
		}
	}
	return nil
}

// Summary is a flat digest of a deployment.
type Summary struct {
	Nodes        int
	NodesByLevel map[int]int
	Sensors      int
	Actuators    int
	Modules      int
	Edges        int
	Loops        int
	Assignments  int
	Unpinned     []string
}

// Summarize digests d. Unpinned lists modules with no assignment, in
// declaration order.
func (d *Deployment) Summarize() Summary {
	pinned := d.Mapping.ByModule()
	var unpinned []string
	for _, m := range d.Application.Modules() {
		if _, ok := pinned[m.Name]; !ok {
			unpinned = append(unpinned, m.Name)
		}
	}
	return Summary{
		Nodes:        d.Topology.Len(),
		NodesByLevel: d.Topology.CountByLevel(),
		Sensors:      len(d.Topology.Sensors()),
		Actuators:    len(d.Topology.Actuators()),
		Modules:      len(d.Application.Modules()),
		Edges:        len(d.Application.Edges()),
		Loops:        len(d.Application.Loops()),
		Assignments:  d.Mapping.Len(),
		Unpinned:     unpinned,
	}
}
