package topology

import (
	"context"
	"errors"

	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/dag"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/idalloc"
)

// FromDescription instantiates a topology from a loaded description.
//
// Declared ids are kept as entity ids and reported to alloc, so anything
// allocated afterwards cannot collide with them. Nodes are linked in
// declaration order: a parent must be declared before any of its children.
func FromDescription(ctx context.Context, desc *config.Topology, alloc *idalloc.Allocator) (*Topology, error) {
	logger := ctxlog.FromContext(ctx)

	if err := config.Validate(desc); err != nil {
		return nil, err
	}
	logger.Debug("FromDescription: description passed range checks.", "nodes", len(desc.Nodes), "sensors", len(desc.Sensors), "actuators", len(desc.Actuators))

	declared := make(map[string]bool, len(desc.Nodes))
	for _, nd := range desc.Nodes {
		declared[nd.Name] = true
	}

	// Register and link in one pass, so only earlier nodes can be parents.
	g := dag.New()
	ids := make(map[int]string)
	for _, nd := range desc.Nodes {
		if !g.AddNode(nd.Name) {
			return nil, fogerr.Structuralf(nd.Name, fogerr.DuplicateName, "node is declared more than once")
		}
		if err := claimID(ids, nd.ID, nd.Name); err != nil {
			return nil, err
		}
		if nd.Parent == "" {
			continue
		}
		if !g.HasNode(nd.Parent) {
			if declared[nd.Parent] {
				return nil, fogerr.Structuralf(nd.Name, fogerr.UnresolvedParent, "parent %q is declared after the child", nd.Parent)
			}
			return nil, fogerr.Structuralf(nd.Name, fogerr.UnresolvedParent, "parent %q is not defined", nd.Parent)
		}
		if err := g.AddEdge(nd.Parent, nd.Name); err != nil {
			return nil, fogerr.Structuralf(nd.Name, fogerr.UnresolvedParent, "%v", err)
		}
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			return nil, fogerr.Structuralf(cycle.Path[0], fogerr.ParentCycle, "parent chain loops: %v", err)
		}
		return nil, err
	}
	if roots := g.Roots(); len(roots) != 1 {
		return nil, fogerr.Structuralf("", fogerr.RootCount, "expected exactly one root, found %d %v", len(roots), roots)
	}
	logger.Debug("FromDescription: parent relation is a tree.", "root", order[0])

	byName := make(map[string]*config.Node, len(desc.Nodes))
	for _, nd := range desc.Nodes {
		byName[nd.Name] = nd
	}

	// Walk parents-first so depth is known before children.
	depth := make(map[string]int, len(order))
	nodes := make([]FogNode, 0, len(order))
	for _, name := range order {
		nd := byName[name]
		parentID := NoParent
		if nd.Parent != "" {
			depth[name] = depth[nd.Parent] + 1
			parentID = byName[nd.Parent].ID
		}
		if nd.Level != depth[name] {
			return nil, fogerr.Structuralf(name, fogerr.LevelMismatch, "declared level %d but depth is %d", nd.Level, depth[name])
		}
		nodes = append(nodes, nodeFromDesc(nd, parentID))
		alloc.Observe(nd.ID)
	}

	sensors := make([]Sensor, 0, len(desc.Sensors))
	for _, sd := range desc.Sensors {
		if err := claimID(ids, sd.ID, sd.Name); err != nil {
			return nil, err
		}
		gw, ok := byName[sd.Gateway]
		if !ok {
			return nil, fogerr.Structuralf(sd.Name, fogerr.UnresolvedGateway, "gateway %q is not defined", sd.Gateway)
		}
		sensors = append(sensors, Sensor{
			ID:        sd.ID,
			Name:      sd.Name,
			TupleType: sd.TupleType,
			GatewayID: gw.ID,
			Latency:   sd.Latency,
			Distribution: Distribution{
				Kind:      DistributionKind(sd.Distribution.Kind),
				Mean:      sd.Distribution.Mean,
				Deviation: sd.Distribution.Deviation,
				Spread:    sd.Distribution.Spread,
			},
		})
		alloc.Observe(sd.ID)
	}

	actuators := make([]Actuator, 0, len(desc.Actuators))
	for _, ad := range desc.Actuators {
		if err := claimID(ids, ad.ID, ad.Name); err != nil {
			return nil, err
		}
		gw, ok := byName[ad.Gateway]
		if !ok {
			return nil, fogerr.Structuralf(ad.Name, fogerr.UnresolvedGateway, "gateway %q is not defined", ad.Gateway)
		}
		actuators = append(actuators, Actuator{
			ID:           ad.ID,
			Name:         ad.Name,
			ActuatorType: ad.ActuatorType,
			GatewayID:    gw.ID,
			Latency:      ad.Latency,
		})
		alloc.Observe(ad.ID)
	}

	t, err := newTopology(nodes, sensors, actuators)
	if err != nil {
		return nil, err
	}
	logger.Debug("FromDescription: postconditions verified.", "nodes", t.Len(), "next_id", alloc.Peek())
	return t, nil
}

func claimID(ids map[int]string, id int, name string) error {
	if owner, taken := ids[id]; taken {
		return fogerr.Structuralf(name, fogerr.DuplicateID, "id %d is already declared by %q", id, owner)
	}
	ids[id] = name
	return nil
}

func nodeFromDesc(nd *config.Node, parentID int) FogNode {
	return FogNode{
		ID:            nd.ID,
		Name:          nd.Name,
		Level:         nd.Level,
		ParentID:      parentID,
		UplinkLatency: nd.UplinkLatency,
		NodeSpec: NodeSpec{
			MIPS:        nd.MIPS,
			RAM:         nd.RAM,
			UpBw:        nd.UpBw,
			DownBw:      nd.DownBw,
			RatePerMIPS: nd.RatePerMIPS,
			BusyPower:   nd.BusyPower,
			IdlePower:   nd.IdlePower,
			Cost: Cost{
				Processing: nd.Cost.Processing,
				Memory:     nd.Cost.Memory,
				Storage:    nd.Cost.Storage,
				Bandwidth:  nd.Cost.Bandwidth,
			},
		},
	}
}
