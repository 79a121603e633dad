package topology

import (
	"testing"

	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/idalloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descNode(id int, name, parent string, level int) *config.Node {
	return &config.Node{ID: id, Name: name, Parent: parent, Level: level, MIPS: 1000, RAM: 1000, UpBw: 100, DownBw: 100}
}

// smallDescription is cloud -> gw -> {e1, e2} with a sensor and an actuator
// on e1.
func smallDescription() *config.Topology {
	return &config.Topology{
		Nodes: []*config.Node{
			descNode(1, "cloud", "", 0),
			descNode(2, "gw", "cloud", 1),
			descNode(3, "e1", "gw", 2),
			descNode(4, "e2", "gw", 2),
		},
		Sensors: []*config.Sensor{
			{ID: 10, Name: "s1", TupleType: "ULTRASONIC", Gateway: "e1", Latency: 1, Distribution: config.Distribution{Kind: "deterministic", Mean: 5}},
		},
		Actuators: []*config.Actuator{
			{ID: 11, Name: "sw1", ActuatorType: "SWITCH", Gateway: "e1", Latency: 1},
		},
	}
}

func TestFromDescription_Valid(t *testing.T) {
	alloc := idalloc.New()
	topo, err := FromDescription(testCtx(), smallDescription(), alloc)
	require.NoError(t, err)

	assert.Equal(t, 4, topo.Len())
	assert.Equal(t, "cloud", topo.Root().Name)
	e1, ok := topo.NodeByName("e1")
	require.True(t, ok)
	assert.Equal(t, 3, e1.ID)
	assert.Equal(t, 2, e1.ParentID)
	assert.Equal(t, []int{3, 4}, topo.Children(2))
	require.Len(t, topo.SensorsAt(3), 1)
	assert.Equal(t, "s1", topo.SensorsAt(3)[0].Name)
	assert.Equal(t, 12, alloc.Peek(), "declared ids must be observed by the allocator")
}

func TestFromDescription_ParentDeclaredAfterChild(t *testing.T) {
	desc := smallDescription()
	desc.Nodes = []*config.Node{desc.Nodes[1], desc.Nodes[0], desc.Nodes[2], desc.Nodes[3]}
	alloc := idalloc.New()

	topo, err := FromDescription(testCtx(), desc, alloc)
	require.Error(t, err)
	assert.Nil(t, topo)
	assert.Contains(t, err.Error(), `parent "cloud" is declared after the child`)

	fe, ok := fogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, fogerr.Structural, fe.Kind)
	assert.Equal(t, fogerr.UnresolvedParent, fe.Invariant)
	assert.Equal(t, "gw", fe.Entity)
	assert.Equal(t, 1, alloc.Peek(), "a rejected description must not advance the allocator")
}

func TestDescribe_ParentsPrecedeChildren(t *testing.T) {
	// The gateway carries a higher id than the edge nodes under it.
	desc := &config.Topology{
		Nodes: []*config.Node{
			descNode(1, "cloud", "", 0),
			descNode(9, "gw", "cloud", 1),
			descNode(2, "e1", "gw", 2),
			descNode(3, "e2", "cloud", 1),
		},
		Sensors:   []*config.Sensor{},
		Actuators: []*config.Actuator{},
	}
	topo, err := FromDescription(testCtx(), desc, idalloc.New())
	require.NoError(t, err)

	described := Describe(topo)
	var names []string
	for _, n := range described.Nodes {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"cloud", "e2", "gw", "e1"}, names)

	reloaded, err := FromDescription(testCtx(), described, idalloc.New())
	require.NoError(t, err)
	assert.Equal(t, topo.Nodes(), reloaded.Nodes())
}

func TestFromDescription_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(d *config.Topology)
		kind      fogerr.Kind
		invariant string
		entity    string
	}{
		{
			name:      "unresolved parent",
			mutate:    func(d *config.Topology) { d.Nodes[1].Parent = "nowhere" },
			kind:      fogerr.Structural,
			invariant: fogerr.UnresolvedParent,
			entity:    "gw",
		},
		{
			name:      "self parent",
			mutate:    func(d *config.Topology) { d.Nodes[3].Parent = "e2" },
			kind:      fogerr.Structural,
			invariant: fogerr.ParentCycle,
		},
		{
			name: "two node cycle",
			mutate: func(d *config.Topology) {
				d.Nodes = append(d.Nodes, descNode(5, "x", "y", 1), descNode(6, "y", "x", 2))
			},
			kind:      fogerr.Structural,
			invariant: fogerr.UnresolvedParent,
			entity:    "x",
		},
		{
			name:      "child declared before its parent",
			mutate:    func(d *config.Topology) { d.Nodes[0], d.Nodes[1] = d.Nodes[1], d.Nodes[0] },
			kind:      fogerr.Structural,
			invariant: fogerr.UnresolvedParent,
			entity:    "gw",
		},
		{
			name:      "duplicate node id",
			mutate:    func(d *config.Topology) { d.Nodes[3].ID = 3 },
			kind:      fogerr.Structural,
			invariant: fogerr.DuplicateID,
			entity:    "e2",
		},
		{
			name:      "sensor id collides with node",
			mutate:    func(d *config.Topology) { d.Sensors[0].ID = 1 },
			kind:      fogerr.Structural,
			invariant: fogerr.DuplicateID,
			entity:    "s1",
		},
		{
			name:      "duplicate node name",
			mutate:    func(d *config.Topology) { d.Nodes[3].Name = "e1" },
			kind:      fogerr.Structural,
			invariant: fogerr.DuplicateName,
			entity:    "e1",
		},
		{
			name:      "endpoint name collides with node",
			mutate:    func(d *config.Topology) { d.Actuators[0].Name = "e2" },
			kind:      fogerr.Structural,
			invariant: fogerr.DuplicateName,
		},
		{
			name:      "two roots",
			mutate:    func(d *config.Topology) { d.Nodes = append(d.Nodes, descNode(7, "cloud2", "", 0)) },
			kind:      fogerr.Structural,
			invariant: fogerr.RootCount,
		},
		{
			name:      "level mismatch",
			mutate:    func(d *config.Topology) { d.Nodes[2].Level = 3 },
			kind:      fogerr.Structural,
			invariant: fogerr.LevelMismatch,
			entity:    "e1",
		},
		{
			name:      "unresolved gateway",
			mutate:    func(d *config.Topology) { d.Sensors[0].Gateway = "ghost" },
			kind:      fogerr.Structural,
			invariant: fogerr.UnresolvedGateway,
			entity:    "s1",
		},
		{
			name:      "gateway is not a leaf",
			mutate:    func(d *config.Topology) { d.Actuators[0].Gateway = "gw" },
			kind:      fogerr.Structural,
			invariant: fogerr.NonLeafGateway,
			entity:    "sw1",
		},
		{
			name:      "zero mips",
			mutate:    func(d *config.Topology) { d.Nodes[2].MIPS = 0 },
			kind:      fogerr.Config,
			invariant: fogerr.OutOfRange,
			entity:    "e1",
		},
		{
			name:      "no nodes",
			mutate:    func(d *config.Topology) { d.Nodes = nil; d.Sensors = nil; d.Actuators = nil },
			kind:      fogerr.Config,
			invariant: fogerr.MissingField,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			desc := smallDescription()
			tc.mutate(desc)

			topo, err := FromDescription(testCtx(), desc, idalloc.New())
			require.Error(t, err)
			assert.Nil(t, topo)

			fe, ok := fogerr.As(err)
			require.True(t, ok, "expected a typed error, got %T: %v", err, err)
			assert.Equal(t, tc.kind, fe.Kind, err.Error())
			assert.Equal(t, tc.invariant, fe.Invariant, err.Error())
			if tc.entity != "" {
				assert.Equal(t, tc.entity, fe.Entity)
			}
		})
	}
}

func TestDescribe_RoundTrip(t *testing.T) {
	generated, err := Generate(testCtx(), fourTier(3, 2), idalloc.New())
	require.NoError(t, err)

	desc := Describe(generated)
	alloc := idalloc.New()
	reloaded, err := FromDescription(testCtx(), desc, alloc)
	require.NoError(t, err)

	assert.Equal(t, generated.Nodes(), reloaded.Nodes())
	assert.Equal(t, generated.Sensors(), reloaded.Sensors())
	assert.Equal(t, generated.Actuators(), reloaded.Actuators())
	assert.Equal(t, desc, Describe(reloaded))

	next := alloc.Next()
	for _, n := range reloaded.Nodes() {
		assert.Less(t, n.ID, next)
	}
}
