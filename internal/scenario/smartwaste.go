package scenario

import (
	"context"
	"fmt"

	"github.com/specialistvlad/fogtopo/internal/appgraph"
	"github.com/specialistvlad/fogtopo/internal/mapping"
	"github.com/specialistvlad/fogtopo/internal/matcher"
	"github.com/specialistvlad/fogtopo/internal/topology"
)

// AppID identifies the smart waste management application.
const AppID = "swms"

// Module names.
const (
	MasterModule    = "master-module"
	WasteInfoModule = "waste-info-module"
	UserInterface   = "user_interface"
)

// Tuple types exchanged between modules.
const (
	ThresholdReached  = "THRESHOLD_REACHED"
	RequestCollection = "REQUEST_COLLECTION"
	ActParams         = "ACT_PARAMS"
)

// CloudName is the name of the root device in every smart waste topology.
const CloudName = "cloud"

// Default branching of the generated tree.
const (
	DefaultAreas       = 5
	DefaultBinsPerArea = 5
)

// Variant selects the tag names and bin naming of a smart waste deployment.
type Variant struct {
	Name         string
	SensorType   string
	ActuatorType string
	// BinPrefix names generated bins; BinSelector picks them out again when
	// the waste-info module is pinned to every bin.
	BinPrefix   string
	BinSelector string
}

var (
	// Classic uses BIN sensors and ACT_CONTROL actuators on "b-" bins.
	Classic = Variant{
		Name:         "smartwaste",
		SensorType:   "BIN",
		ActuatorType: "ACT_CONTROL",
		BinPrefix:    "b-",
		BinSelector:  "prefix:b-",
	}
	// Ultrasonic uses ULTRASONIC sensors and SWITCH actuators on "B" bins.
	Ultrasonic = Variant{
		Name:         "smartwaste-ultrasonic",
		SensorType:   "ULTRASONIC",
		ActuatorType: "SWITCH",
		BinPrefix:    "B-",
		BinSelector:  "prefix:B",
	}
)

// Lookup returns the variant with the given name.
func Lookup(name string) (Variant, error) {
	for _, v := range []Variant{Classic, Ultrasonic} {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown scenario %q (expected %q or %q)", name, Classic.Name, Ultrasonic.Name)
}

var defaultCost = topology.Cost{Processing: 3.0, Memory: 0.05, Storage: 0.001, Bandwidth: 0.0}

var (
	cloudSpec = topology.NodeSpec{MIPS: 44800, RAM: 40000, UpBw: 100, DownBw: 10000, RatePerMIPS: 0.01, BusyPower: 16 * 103, IdlePower: 16 * 83.25, Cost: defaultCost}
	proxySpec = topology.NodeSpec{MIPS: 2800, RAM: 4000, UpBw: 10000, DownBw: 10000, RatePerMIPS: 0.0, BusyPower: 107.339, IdlePower: 83.4333, Cost: defaultCost}
	areaSpec  = proxySpec
	binSpec   = topology.NodeSpec{MIPS: 500, RAM: 1000, UpBw: 10000, DownBw: 10000, RatePerMIPS: 0, BusyPower: 87.53, IdlePower: 82.44, Cost: defaultCost}
)

// Schedule returns the four-tier tree: cloud, proxy server (100 ms), areas
// (2 ms) and bins (2 ms), each bin carrying one sensor and one actuator at
// 1 ms. Sensors emit every 5 time units.
func (v Variant) Schedule(areas, binsPerArea int) topology.Schedule {
	return topology.Schedule{
		Tiers: []topology.Tier{
			{Name: CloudName, Fanout: 1, Spec: cloudSpec},
			{Name: "proxy-server", Fanout: 1, Spec: proxySpec, UplinkLatency: 100},
			{Prefix: "a-", Fanout: areas, Spec: areaSpec, UplinkLatency: 2},
			{Prefix: v.BinPrefix, Fanout: binsPerArea, Spec: binSpec, UplinkLatency: 2},
		},
		Sensor: &topology.SensorSpec{
			Prefix:       "s-",
			TupleType:    v.SensorType,
			Latency:      1.0,
			Distribution: topology.Distribution{Kind: topology.Deterministic, Mean: 5},
		},
		Actuator: &topology.ActuatorSpec{
			Prefix:       "act-",
			ActuatorType: v.ActuatorType,
			Latency:      1.0,
		},
	}
}

// Application declares the smart waste application and validates it
// against topo.
func (v Variant) Application(ctx context.Context, topo *topology.Topology) (*appgraph.Application, error) {
	b := appgraph.New(AppID)

	for _, name := range []string{MasterModule, WasteInfoModule, UserInterface} {
		if err := b.AddModule(name, 10); err != nil {
			return nil, err
		}
	}

	edges := []appgraph.Edge{
		{Source: v.SensorType, Destination: WasteInfoModule, CPULength: 1000, NetworkLength: 20000, TupleType: v.SensorType, Direction: appgraph.Up, Kind: appgraph.SensorEdge},
		{Source: WasteInfoModule, Destination: MasterModule, CPULength: 2000, NetworkLength: 2000, TupleType: ThresholdReached, Direction: appgraph.Up, Kind: appgraph.ModuleEdge},
		{Source: MasterModule, Destination: UserInterface, CPULength: 500, NetworkLength: 2000, TupleType: RequestCollection, Direction: appgraph.Up, Kind: appgraph.ModuleEdge},
		{Source: MasterModule, Destination: v.ActuatorType, Periodicity: 100, CPULength: 28, NetworkLength: 100, TupleType: ActParams, Direction: appgraph.Down, Kind: appgraph.ActuatorEdge},
	}
	for _, e := range edges {
		if err := b.AddEdge(e); err != nil {
			return nil, err
		}
	}

	rules := []appgraph.Selectivity{
		{Module: WasteInfoModule, Incoming: v.SensorType, Outgoing: ThresholdReached, Fraction: 1.0},
		{Module: MasterModule, Incoming: ThresholdReached, Outgoing: ActParams, Fraction: 1.0},
		{Module: MasterModule, Incoming: ThresholdReached, Outgoing: RequestCollection, Fraction: 0.05},
	}
	for _, r := range rules {
		if err := b.AddSelectivity(r.Module, r.Incoming, r.Outgoing, r.Fraction); err != nil {
			return nil, err
		}
	}

	b.AddLoop(WasteInfoModule, MasterModule, UserInterface)
	b.AddLoop(MasterModule, v.ActuatorType)

	return b.Build(ctx, topo)
}

// Mapping pins one waste-info module to every bin and the user interface to
// the cloud. In cloud mode the master module is pinned to the root as well;
// otherwise the engine places it.
func (v Variant) Mapping(ctx context.Context, app *appgraph.Application, topo *topology.Topology, cloud bool) (*mapping.Table, error) {
	r := mapping.New().
		Assign(WasteInfoModule, v.BinSelector).
		AssignPattern(UserInterface, matcher.Literal(CloudName))
	if cloud {
		r.AssignRoot(MasterModule)
	}
	return r.Finalize(ctx, app, topo)
}
