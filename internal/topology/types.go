package topology

// NoParent is the ParentID of the root node.
const NoParent = -1

// Cost holds per-unit cost rates charged by a node.
type Cost struct {
	Processing float64
	Memory     float64
	Storage    float64
	Bandwidth  float64
}

// NodeSpec carries the resource, power and cost parameters of a node. The
// builders copy it verbatim.
type NodeSpec struct {
	MIPS        int64
	RAM         int
	UpBw        int64
	DownBw      int64
	RatePerMIPS float64
	BusyPower   float64
	IdlePower   float64
	Cost        Cost
}

// FogNode is a physical compute node.
type FogNode struct {
	ID       int
	Name     string
	Level    int
	ParentID int
	// UplinkLatency is the propagation delay of the link to the parent,
	// applied identically in both directions.
	UplinkLatency float64
	NodeSpec
}

// IsRoot reports whether the node has no parent.
func (n FogNode) IsRoot() bool {
	return n.ParentID == NoParent
}

// DistributionKind names a sensor inter-emission timing model.
type DistributionKind string

const (
	Deterministic DistributionKind = "deterministic"
	Normal        DistributionKind = "normal"
	Uniform       DistributionKind = "uniform"
)

// Distribution is a sensor's inter-emission time. Deviation applies to the
// normal kind; Spread is the half-width of the uniform kind around Mean.
type Distribution struct {
	Kind      DistributionKind
	Mean      float64
	Deviation float64
	Spread    float64
}

// Bounds returns the support of a uniform distribution. For other kinds
// both bounds equal the mean.
func (d Distribution) Bounds() (lo, hi float64) {
	if d.Kind == Uniform {
		return d.Mean - d.Spread, d.Mean + d.Spread
	}
	return d.Mean, d.Mean
}

// Sensor emits tuples of TupleType into its gateway node.
type Sensor struct {
	ID           int
	Name         string
	TupleType    string
	GatewayID    int
	Latency      float64
	Distribution Distribution
}

// Actuator consumes tuples addressed to ActuatorType from its gateway node.
type Actuator struct {
	ID           int
	Name         string
	ActuatorType string
	GatewayID    int
	Latency      float64
}
