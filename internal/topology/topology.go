package topology

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/specialistvlad/fogtopo/internal/dag"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
)

// Topology is an immutable, validated device tree. Use Generate or
// FromDescription to obtain one.
type Topology struct {
	nodes     []FogNode
	sensors   []Sensor
	actuators []Actuator

	byID     map[int]int
	byName   map[string]int
	children map[int][]int
	root     int
}

// Nodes returns a copy of all nodes ordered by id.
func (t *Topology) Nodes() []FogNode {
	return append([]FogNode(nil), t.nodes...)
}

// Sensors returns a copy of all sensors ordered by id.
func (t *Topology) Sensors() []Sensor {
	return append([]Sensor(nil), t.sensors...)
}

// Actuators returns a copy of all actuators ordered by id.
func (t *Topology) Actuators() []Actuator {
	return append([]Actuator(nil), t.actuators...)
}

// Len returns the number of nodes.
func (t *Topology) Len() int {
	return len(t.nodes)
}

// Root returns the root node.
func (t *Topology) Root() FogNode {
	return t.nodes[t.root]
}

// Node returns the node with the given id.
func (t *Topology) Node(id int) (FogNode, bool) {
	i, ok := t.byID[id]
	if !ok {
		return FogNode{}, false
	}
	return t.nodes[i], true
}

// NodeByName returns the node with the given name.
func (t *Topology) NodeByName(name string) (FogNode, bool) {
	i, ok := t.byName[name]
	if !ok {
		return FogNode{}, false
	}
	return t.nodes[i], true
}

// Parent returns the parent of the node with the given id. It reports false
// for the root and for unknown ids.
func (t *Topology) Parent(id int) (FogNode, bool) {
	n, ok := t.Node(id)
	if !ok || n.IsRoot() {
		return FogNode{}, false
	}
	return t.Node(n.ParentID)
}

// Children returns the ids of the direct children of a node, ordered by id.
func (t *Topology) Children(id int) []int {
	return append([]int(nil), t.children[id]...)
}

// IsLeaf reports whether the node exists and has no children.
func (t *Topology) IsLeaf(id int) bool {
	_, ok := t.byID[id]
	return ok && len(t.children[id]) == 0
}

// Leaves returns every node without children, ordered by id.
func (t *Topology) Leaves() []FogNode {
	var leaves []FogNode
	for _, n := range t.nodes {
		if len(t.children[n.ID]) == 0 {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// NodeNames returns every node name ordered by node id.
func (t *Topology) NodeNames() []string {
	names := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		names[i] = n.Name
	}
	return names
}

// CountByLevel returns the number of nodes on each level.
func (t *Topology) CountByLevel() map[int]int {
	counts := make(map[int]int)
	for _, n := range t.nodes {
		counts[n.Level]++
	}
	return counts
}

// SensorsAt returns the sensors whose gateway is the given node.
func (t *Topology) SensorsAt(nodeID int) []Sensor {
	var out []Sensor
	for _, s := range t.sensors {
		if s.GatewayID == nodeID {
			out = append(out, s)
		}
	}
	return out
}

// ActuatorsAt returns the actuators whose gateway is the given node.
func (t *Topology) ActuatorsAt(nodeID int) []Actuator {
	var out []Actuator
	for _, a := range t.actuators {
		if a.GatewayID == nodeID {
			out = append(out, a)
		}
	}
	return out
}

// HasSensorType reports whether at least one sensor emits the tuple type.
func (t *Topology) HasSensorType(tupleType string) bool {
	for _, s := range t.sensors {
		if s.TupleType == tupleType {
			return true
		}
	}
	return false
}

// HasActuatorType reports whether at least one actuator has the type.
func (t *Topology) HasActuatorType(actuatorType string) bool {
	for _, a := range t.actuators {
		if a.ActuatorType == actuatorType {
			return true
		}
	}
	return false
}

// newTopology indexes the given entities and checks every postcondition.
// The slices are taken over by the returned Topology.
func newTopology(nodes []FogNode, sensors []Sensor, actuators []Actuator) (*Topology, error) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	sort.Slice(sensors, func(i, j int) bool { return sensors[i].ID < sensors[j].ID })
	sort.Slice(actuators, func(i, j int) bool { return actuators[i].ID < actuators[j].ID })

	t := &Topology{
		nodes:     nodes,
		sensors:   sensors,
		actuators: actuators,
		byID:      make(map[int]int, len(nodes)),
		byName:    make(map[string]int, len(nodes)),
		children:  make(map[int][]int),
		root:      -1,
	}

	ids := make(map[int]string)
	names := make(map[string]struct{})
	claim := func(id int, name string) error {
		if owner, taken := ids[id]; taken {
			return fogerr.Structuralf(name, fogerr.DuplicateID, "id %d is already used by %q", id, owner)
		}
		if _, taken := names[name]; taken {
			return fogerr.Structuralf(name, fogerr.DuplicateName, "name is declared more than once")
		}
		ids[id] = name
		names[name] = struct{}{}
		return nil
	}

	for i, n := range nodes {
		if err := claim(n.ID, n.Name); err != nil {
			return nil, err
		}
		t.byID[n.ID] = i
		t.byName[n.Name] = i
	}
	for _, s := range sensors {
		if err := claim(s.ID, s.Name); err != nil {
			return nil, err
		}
	}
	for _, a := range actuators {
		if err := claim(a.ID, a.Name); err != nil {
			return nil, err
		}
	}

	for _, n := range nodes {
		if n.IsRoot() {
			continue
		}
		if _, ok := t.byID[n.ParentID]; !ok {
			return nil, fogerr.Structuralf(n.Name, fogerr.UnresolvedParent, "parent id %d does not exist", n.ParentID)
		}
		t.children[n.ParentID] = append(t.children[n.ParentID], n.ID)
	}

	if err := t.Verify(); err != nil {
		return nil, err
	}
	return t, nil
}

// Verify checks the tree postconditions: one root at level 0, an acyclic
// parent relation, level(n) = level(parent)+1, and gateways that resolve to
// leaf nodes. Builders call it before returning; callers may call it again
// on a Topology received from elsewhere.
func (t *Topology) Verify() error {
	g := dag.New()
	for _, n := range t.nodes {
		g.AddNode(strconv.Itoa(n.ID))
	}
	for _, n := range t.nodes {
		if n.IsRoot() {
			continue
		}
		if err := g.AddEdge(strconv.Itoa(n.ParentID), strconv.Itoa(n.ID)); err != nil {
			return fogerr.Structuralf(n.Name, fogerr.UnresolvedParent, "parent id %d does not exist", n.ParentID)
		}
	}
	if err := g.DetectCycles(); err != nil {
		return fogerr.Structuralf(t.nameOf(err), fogerr.ParentCycle, "%v", err)
	}

	var roots []string
	t.root = -1
	for i, n := range t.nodes {
		if n.IsRoot() {
			roots = append(roots, n.Name)
			t.root = i
		}
	}
	if len(roots) != 1 {
		return fogerr.Structuralf("", fogerr.RootCount, "expected exactly one root, found %d %v", len(roots), roots)
	}

	for _, n := range t.nodes {
		want := 0
		if !n.IsRoot() {
			want = t.nodes[t.byID[n.ParentID]].Level + 1
		}
		if n.Level != want {
			return fogerr.Structuralf(n.Name, fogerr.LevelMismatch, "level is %d but depth is %d", n.Level, want)
		}
	}

	for _, s := range t.sensors {
		if err := t.checkGateway(s.Name, s.GatewayID); err != nil {
			return err
		}
	}
	for _, a := range t.actuators {
		if err := t.checkGateway(a.Name, a.GatewayID); err != nil {
			return err
		}
	}
	return nil
}

func (t *Topology) checkGateway(endpoint string, gatewayID int) error {
	gw, ok := t.Node(gatewayID)
	if !ok {
		return fogerr.Structuralf(endpoint, fogerr.UnresolvedGateway, "gateway id %d does not exist", gatewayID)
	}
	if !t.IsLeaf(gatewayID) {
		return fogerr.Structuralf(endpoint, fogerr.NonLeafGateway, "gateway %q is not a leaf node", gw.Name)
	}
	return nil
}

// nameOf maps the first id of a dag cycle back to a node name.
func (t *Topology) nameOf(err error) string {
	var cycle *dag.CycleError
	if !errors.As(err, &cycle) || len(cycle.Path) == 0 {
		return ""
	}
	id, convErr := strconv.Atoi(cycle.Path[0])
	if convErr != nil {
		return cycle.Path[0]
	}
	if n, found := t.Node(id); found {
		return n.Name
	}
	return fmt.Sprint(id)
}
