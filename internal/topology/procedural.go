package topology

import (
	"context"
	"strconv"
	"strings"

	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/idalloc"
)

// Tier describes one level of a generated tree.
//
// A tier with a Name produces exactly one node per parent and that node
// gets the fixed name (Fanout must be 1). Otherwise the tier produces Fanout
// nodes per parent, named Prefix followed by the index path of every
// indexed tier above it, joined with "-" (for example "b-3-1").
type Tier struct {
	Name          string
	Prefix        string
	Fanout        int
	Spec          NodeSpec
	UplinkLatency float64
}

// SensorSpec describes the sensor attached to every leaf of a generated tree.
type SensorSpec struct {
	Prefix       string
	TupleType    string
	Latency      float64
	Distribution Distribution
}

// ActuatorSpec describes the actuator attached to every leaf of a generated
// tree.
type ActuatorSpec struct {
	Prefix       string
	ActuatorType string
	Latency      float64
}

// Schedule is the full input of the procedural builder. Tiers run from the
// root (index 0) to the leaves. The root tier's UplinkLatency is ignored.
type Schedule struct {
	Tiers    []Tier
	Sensor   *SensorSpec
	Actuator *ActuatorSpec
}

// ExpectedNodes returns how many nodes the schedule generates.
func (s Schedule) ExpectedNodes() int {
	total, width := 0, 1
	for _, tier := range s.Tiers {
		width *= tier.Fanout
		total += width
	}
	return total
}

// ExpectedLeaves returns how many leaf nodes the schedule generates.
func (s Schedule) ExpectedLeaves() int {
	width := 1
	for _, tier := range s.Tiers {
		width *= tier.Fanout
	}
	if len(s.Tiers) == 0 {
		return 0
	}
	return width
}

// Validate checks a schedule before any id is allocated.
func (s Schedule) Validate() error {
	if len(s.Tiers) == 0 {
		return fogerr.Configf("", fogerr.MissingField, "schedule has no tiers")
	}
	if s.Tiers[0].Fanout != 1 {
		return fogerr.Configf(s.Tiers[0].label(), fogerr.RootCount, "root tier must have fan-out 1, got %d", s.Tiers[0].Fanout)
	}
	for i, tier := range s.Tiers {
		switch {
		case tier.Name == "" && tier.Prefix == "":
			return fogerr.Configf(strconv.Itoa(i), fogerr.MissingField, "tier %d needs a name or a prefix", i)
		case tier.Name != "" && tier.Fanout != 1:
			return fogerr.Configf(tier.Name, fogerr.DuplicateName, "a fixed-name tier must have fan-out 1, got %d", tier.Fanout)
		case tier.Fanout < 1:
			return fogerr.Configf(tier.label(), fogerr.OutOfRange, "fan-out must be at least 1, got %d", tier.Fanout)
		case tier.UplinkLatency < 0:
			return fogerr.Configf(tier.label(), fogerr.OutOfRange, "uplink latency must not be negative, got %v", tier.UplinkLatency)
		}
		if err := tier.Spec.validate(tier.label()); err != nil {
			return err
		}
	}
	if s.Sensor != nil {
		if s.Sensor.TupleType == "" || s.Sensor.Prefix == "" {
			return fogerr.Configf(s.Sensor.Prefix, fogerr.MissingField, "sensor spec needs a prefix and a tuple type")
		}
		if s.Sensor.Latency < 0 {
			return fogerr.Configf(s.Sensor.Prefix, fogerr.OutOfRange, "sensor latency must not be negative, got %v", s.Sensor.Latency)
		}
		if err := s.Sensor.Distribution.validate(s.Sensor.Prefix); err != nil {
			return err
		}
	}
	if s.Actuator != nil {
		if s.Actuator.ActuatorType == "" || s.Actuator.Prefix == "" {
			return fogerr.Configf(s.Actuator.Prefix, fogerr.MissingField, "actuator spec needs a prefix and an actuator type")
		}
		if s.Actuator.Latency < 0 {
			return fogerr.Configf(s.Actuator.Prefix, fogerr.OutOfRange, "actuator latency must not be negative, got %v", s.Actuator.Latency)
		}
	}
	return nil
}

func (t Tier) label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Prefix
}

func (ns NodeSpec) validate(entity string) error {
	switch {
	case ns.MIPS <= 0:
		return fogerr.Configf(entity, fogerr.OutOfRange, "mips must be positive, got %d", ns.MIPS)
	case ns.RAM <= 0:
		return fogerr.Configf(entity, fogerr.OutOfRange, "ram must be positive, got %d", ns.RAM)
	case ns.UpBw < 0 || ns.DownBw < 0:
		return fogerr.Configf(entity, fogerr.OutOfRange, "bandwidth must not be negative")
	case ns.RatePerMIPS < 0 || ns.BusyPower < 0 || ns.IdlePower < 0:
		return fogerr.Configf(entity, fogerr.OutOfRange, "rate and power must not be negative")
	case ns.Cost.Processing < 0 || ns.Cost.Memory < 0 || ns.Cost.Storage < 0 || ns.Cost.Bandwidth < 0:
		return fogerr.Configf(entity, fogerr.OutOfRange, "cost rates must not be negative")
	}
	return nil
}

func (d Distribution) validate(entity string) error {
	switch d.Kind {
	case Deterministic, Normal, Uniform:
	default:
		return fogerr.Configf(entity, fogerr.OutOfRange, "unknown distribution kind %q", d.Kind)
	}
	if d.Mean <= 0 {
		return fogerr.Configf(entity, fogerr.OutOfRange, "distribution mean must be positive, got %v", d.Mean)
	}
	if d.Deviation < 0 || d.Spread < 0 || d.Spread > d.Mean {
		return fogerr.Configf(entity, fogerr.OutOfRange, "distribution deviation/spread out of range")
	}
	return nil
}

// generator carries the state of one Generate call.
type generator struct {
	schedule  Schedule
	alloc     *idalloc.Allocator
	nodes     []FogNode
	sensors   []Sensor
	actuators []Actuator
}

// Generate builds a topology top-down from a schedule. Identifiers come from
// alloc in creation order: each node, then (for leaves) its sensor and
// actuator, then its children.
func Generate(ctx context.Context, schedule Schedule, alloc *idalloc.Allocator) (*Topology, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Generate: validating schedule.", "tiers", len(schedule.Tiers), "expected_nodes", schedule.ExpectedNodes())

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	gen := &generator{schedule: schedule, alloc: alloc}
	gen.build(0, NoParent, 0, nil)
	logger.Debug("Generate: tree constructed.", "nodes", len(gen.nodes), "sensors", len(gen.sensors), "actuators", len(gen.actuators))

	t, err := newTopology(gen.nodes, gen.sensors, gen.actuators)
	if err != nil {
		return nil, err
	}
	logger.Debug("Generate: postconditions verified.", "root", t.Root().Name)
	return t, nil
}

// build creates every node of tier depth under parentID.
func (g *generator) build(depth, parentID, level int, path []string) {
	tier := g.schedule.Tiers[depth]
	leaf := depth == len(g.schedule.Tiers)-1

	for i := 0; i < tier.Fanout; i++ {
		nodePath := path
		name := tier.Name
		if name == "" {
			nodePath = append(append([]string(nil), path...), strconv.Itoa(i))
			name = tier.Prefix + strings.Join(nodePath, "-")
		}

		n := FogNode{
			ID:       g.alloc.Next(),
			Name:     name,
			Level:    level,
			ParentID: parentID,
			NodeSpec: tier.Spec,
		}
		if parentID != NoParent {
			n.UplinkLatency = tier.UplinkLatency
		}
		g.nodes = append(g.nodes, n)

		if leaf {
			g.attachEndpoints(n, nodePath)
			continue
		}
		g.build(depth+1, n.ID, level+1, nodePath)
	}
}

func (g *generator) attachEndpoints(n FogNode, path []string) {
	suffix := strings.Join(path, "-")
	if suffix == "" {
		suffix = n.Name
	}
	if s := g.schedule.Sensor; s != nil {
		g.sensors = append(g.sensors, Sensor{
			ID:           g.alloc.Next(),
			Name:         s.Prefix + suffix,
			TupleType:    s.TupleType,
			GatewayID:    n.ID,
			Latency:      s.Latency,
			Distribution: s.Distribution,
		})
	}
	if a := g.schedule.Actuator; a != nil {
		g.actuators = append(g.actuators, Actuator{
			ID:           g.alloc.Next(),
			Name:         a.Prefix + suffix,
			ActuatorType: a.ActuatorType,
			GatewayID:    n.ID,
			Latency:      a.Latency,
		})
	}
}
