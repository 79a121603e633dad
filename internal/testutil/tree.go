package testutil

import (
	"testing"

	"github.com/specialistvlad/fogtopo/internal/idalloc"
	"github.com/specialistvlad/fogtopo/internal/topology"
	"github.com/stretchr/testify/require"
)

// Tag names used by the fixture tree.
const (
	SensorType   = "BIN"
	ActuatorType = "ACT_CONTROL"
)

// LeafSpec is the node spec given to fixture leaves.
var LeafSpec = topology.NodeSpec{MIPS: 500, RAM: 1000, UpBw: 10000, DownBw: 10000, BusyPower: 87.53, IdlePower: 82.44}

// TreeSchedule returns a four-tier schedule shaped like the smart waste
// deployment: "cloud", "proxy-server", areas "a-<i>" and leaves "b-<i>-<j>",
// each leaf carrying sensor "s-<i>-<j>" and actuator "act-<i>-<j>".
func TreeSchedule(areas, binsPerArea int) topology.Schedule {
	inner := topology.NodeSpec{MIPS: 2800, RAM: 4000, UpBw: 10000, DownBw: 10000, BusyPower: 107.339, IdlePower: 83.4333}
	return topology.Schedule{
		Tiers: []topology.Tier{
			{Name: "cloud", Fanout: 1, Spec: topology.NodeSpec{MIPS: 44800, RAM: 40000, UpBw: 100, DownBw: 10000, RatePerMIPS: 0.01}},
			{Name: "proxy-server", Fanout: 1, Spec: inner, UplinkLatency: 100},
			{Prefix: "a-", Fanout: areas, Spec: inner, UplinkLatency: 2},
			{Prefix: "b-", Fanout: binsPerArea, Spec: LeafSpec, UplinkLatency: 2},
		},
		Sensor: &topology.SensorSpec{
			Prefix:       "s-",
			TupleType:    SensorType,
			Latency:      1,
			Distribution: topology.Distribution{Kind: topology.Deterministic, Mean: 5},
		},
		Actuator: &topology.ActuatorSpec{Prefix: "act-", ActuatorType: ActuatorType, Latency: 1},
	}
}

// Tree generates the TreeSchedule topology with a fresh allocator.
func Tree(t *testing.T, areas, binsPerArea int) *topology.Topology {
	t.Helper()
	topo, err := topology.Generate(Context(t), TreeSchedule(areas, binsPerArea), idalloc.New())
	require.NoError(t, err)
	return topo
}
