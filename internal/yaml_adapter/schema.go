package yaml_adapter

// document is the on-disk layout. Required scalars are pointers so a missing
// key can be told apart from an explicit zero.
type document struct {
	Nodes     []*node     `yaml:"nodes" validate:"required,dive,required"`
	Sensors   []*sensor   `yaml:"sensors,omitempty" validate:"dive,required"`
	Actuators []*actuator `yaml:"actuators,omitempty" validate:"dive,required"`
}

type node struct {
	ID            *int     `yaml:"id" validate:"required"`
	Name          *string  `yaml:"name" validate:"required"`
	Parent        string   `yaml:"parent,omitempty"`
	Level         *int     `yaml:"level" validate:"required"`
	MIPS          *int64   `yaml:"mips" validate:"required"`
	RAM           *int     `yaml:"ram" validate:"required"`
	UpBw          *int64   `yaml:"up_bw" validate:"required"`
	DownBw        *int64   `yaml:"down_bw" validate:"required"`
	RatePerMIPS   *float64 `yaml:"rate_per_mips" validate:"required"`
	BusyPower     *float64 `yaml:"busy_power" validate:"required"`
	IdlePower     *float64 `yaml:"idle_power" validate:"required"`
	UplinkLatency *float64 `yaml:"uplink_latency,omitempty" validate:"required_with=Parent"`
	Cost          *cost    `yaml:"cost" validate:"required"`
}

type cost struct {
	Processing *float64 `yaml:"processing" validate:"required"`
	Memory     *float64 `yaml:"memory" validate:"required"`
	Storage    *float64 `yaml:"storage" validate:"required"`
	Bandwidth  *float64 `yaml:"bandwidth" validate:"required"`
}

type sensor struct {
	ID           *int          `yaml:"id" validate:"required"`
	Name         *string       `yaml:"name" validate:"required"`
	TupleType    *string       `yaml:"tuple_type" validate:"required"`
	Gateway      *string       `yaml:"gateway" validate:"required"`
	Latency      *float64      `yaml:"latency" validate:"required"`
	Distribution *distribution `yaml:"distribution" validate:"required"`
}

type distribution struct {
	Kind      *string  `yaml:"kind" validate:"required"`
	Mean      *float64 `yaml:"mean" validate:"required"`
	Deviation *float64 `yaml:"deviation,omitempty"`
	Spread    *float64 `yaml:"spread,omitempty"`
}

type actuator struct {
	ID           *int     `yaml:"id" validate:"required"`
	Name         *string  `yaml:"name" validate:"required"`
	ActuatorType *string  `yaml:"actuator_type" validate:"required"`
	Gateway      *string  `yaml:"gateway" validate:"required"`
	Latency      *float64 `yaml:"latency" validate:"required"`
}
