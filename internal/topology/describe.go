package topology

import "github.com/specialistvlad/fogtopo/internal/config"

// Describe converts a topology into the format-agnostic description model.
// Nodes are listed depth-first from the root with siblings in id order, so
// every parent precedes its children. Loading the result with FromDescription
// yields a structurally identical topology.
func Describe(t *Topology) *config.Topology {
	desc := &config.Topology{
		Nodes:     make([]*config.Node, 0, len(t.nodes)),
		Sensors:   make([]*config.Sensor, 0, len(t.sensors)),
		Actuators: make([]*config.Actuator, 0, len(t.actuators)),
	}

	for _, id := range t.preorder() {
		n, _ := t.Node(id)
		parent := ""
		if p, ok := t.Parent(n.ID); ok {
			parent = p.Name
		}
		desc.Nodes = append(desc.Nodes, &config.Node{
			ID:            n.ID,
			Name:          n.Name,
			Parent:        parent,
			Level:         n.Level,
			MIPS:          n.MIPS,
			RAM:           n.RAM,
			UpBw:          n.UpBw,
			DownBw:        n.DownBw,
			RatePerMIPS:   n.RatePerMIPS,
			BusyPower:     n.BusyPower,
			IdlePower:     n.IdlePower,
			UplinkLatency: n.UplinkLatency,
			Cost: config.Cost{
				Processing: n.Cost.Processing,
				Memory:     n.Cost.Memory,
				Storage:    n.Cost.Storage,
				Bandwidth:  n.Cost.Bandwidth,
			},
		})
	}

	for _, s := range t.sensors {
		gw, _ := t.Node(s.GatewayID)
		desc.Sensors = append(desc.Sensors, &config.Sensor{
			ID:        s.ID,
			Name:      s.Name,
			TupleType: s.TupleType,
			Gateway:   gw.Name,
			Latency:   s.Latency,
			Distribution: config.Distribution{
				Kind:      string(s.Distribution.Kind),
				Mean:      s.Distribution.Mean,
				Deviation: s.Distribution.Deviation,
				Spread:    s.Distribution.Spread,
			},
		})
	}

	for _, a := range t.actuators {
		gw, _ := t.Node(a.GatewayID)
		desc.Actuators = append(desc.Actuators, &config.Actuator{
			ID:           a.ID,
			Name:         a.Name,
			ActuatorType: a.ActuatorType,
			Gateway:      gw.Name,
			Latency:      a.Latency,
		})
	}
	return desc
}

func (t *Topology) preorder() []int {
	order := make([]int, 0, len(t.nodes))
	if len(t.nodes) == 0 {
		return order
	}
	stack := []int{t.Root().ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, id)
		kids := t.children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return order
}
