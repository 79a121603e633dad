package appgraph

// Direction tells whether an edge carries tuples toward the cloud or toward
// the leaves.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// EdgeKind tells which kind of endpoints an edge connects.
type EdgeKind int

const (
	// SensorEdge starts at a sensor tuple-type tag and ends at a module.
	SensorEdge EdgeKind = iota + 1
	// ModuleEdge connects two modules.
	ModuleEdge
	// ActuatorEdge starts at a module and ends at an actuator tag.
	ActuatorEdge
)

// String implements fmt.Stringer.
func (k EdgeKind) String() string {
	switch k {
	case SensorEdge:
		return "sensor"
	case ModuleEdge:
		return "module"
	case ActuatorEdge:
		return "actuator"
	default:
		return "unknown"
	}
}

// Module is a named unit of application logic.
type Module struct {
	Name string
	RAM  int
}

// Edge is a typed data-flow edge. Periodicity is only meaningful on
// actuator-bound edges; zero means the edge is not periodic.
type Edge struct {
	Source        string
	Destination   string
	CPULength     float64
	NetworkLength float64
	TupleType     string
	Direction     Direction
	Kind          EdgeKind
	Periodicity   float64
}

// Selectivity states that Module emits Fraction tuples of type Outgoing per
// incoming tuple of type Incoming. Rules are independent of each other.
type Selectivity struct {
	Module   string
	Incoming string
	Outgoing string
	Fraction float64
}

// Loop is an ordered list of endpoint names whose end-to-end latency is
// monitored. Consecutive entries need not be joined by an edge.
type Loop struct {
	Entries []string
}
