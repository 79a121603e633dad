package config

// Distribution kinds accepted for sensor inter-emission timing.
const (
	DistributionDeterministic = "deterministic"
	DistributionNormal        = "normal"
	DistributionUniform       = "uniform"
)

// DistributionParams reports which optional parameters a distribution kind
// reads.
func DistributionParams(kind string) (deviation, spread bool) {
	return kind == DistributionNormal, kind == DistributionUniform
}

// Topology is the format-agnostic representation of a topology description.
type Topology struct {
	Nodes     []*Node     `validate:"required,min=1,dive,required"`
	Sensors   []*Sensor   `validate:"dive,required"`
	Actuators []*Actuator `validate:"dive,required"`
}

// Node describes one fog device. Parent is the name of the parent node and
// is empty only for the root.
type Node struct {
	ID            int     `validate:"gt=0"`
	Name          string  `validate:"required"`
	Parent        string
	Level         int     `validate:"gte=0"`
	MIPS          int64   `validate:"gt=0"`
	RAM           int     `validate:"gt=0"`
	UpBw          int64   `validate:"gte=0"`
	DownBw        int64   `validate:"gte=0"`
	RatePerMIPS   float64 `validate:"gte=0"`
	BusyPower     float64 `validate:"gte=0"`
	IdlePower     float64 `validate:"gte=0"`
	UplinkLatency float64 `validate:"gte=0"`
	Cost          Cost
}

// Cost holds the per-unit cost rates of a node.
type Cost struct {
	Processing float64 `validate:"gte=0"`
	Memory     float64 `validate:"gte=0"`
	Storage    float64 `validate:"gte=0"`
	Bandwidth  float64 `validate:"gte=0"`
}

// Sensor describes a tuple source attached to a gateway node.
type Sensor struct {
	ID           int     `validate:"gt=0"`
	Name         string  `validate:"required"`
	TupleType    string  `validate:"required"`
	Gateway      string  `validate:"required"`
	Latency      float64 `validate:"gte=0"`
	Distribution Distribution
}

// Actuator describes a tuple sink attached to a gateway node.
type Actuator struct {
	ID           int     `validate:"gt=0"`
	Name         string  `validate:"required"`
	ActuatorType string  `validate:"required"`
	Gateway      string  `validate:"required"`
	Latency      float64 `validate:"gte=0"`
}

// Distribution describes a sensor's inter-emission time. Deviation is used by
// the normal kind and Spread (half-width around Mean) by the uniform kind.
type Distribution struct {
	Kind      string  `validate:"oneof=deterministic normal uniform"`
	Mean      float64 `validate:"gt=0"`
	Deviation float64 `validate:"gte=0"`
	Spread    float64 `validate:"gte=0,ltefield=Mean"`
}
