package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a topology file. Block bodies are
// kept raw so each one can be decoded, and blamed, on its own.
type fileRoot struct {
	Nodes     []*labeledBlock `hcl:"node,block"`
	Sensors   []*labeledBlock `hcl:"sensor,block"`
	Actuators []*labeledBlock `hcl:"actuator,block"`
}

// labeledBlock is any `kind "name" { ... }` block.
type labeledBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// nodeBody is the content of a `node "name"` block. The root omits parent
// and may omit uplink_latency; every other node must set both.
type nodeBody struct {
	ID            int       `hcl:"id"`
	Parent        *string   `hcl:"parent,optional"`
	Level         int       `hcl:"level"`
	MIPS          int64     `hcl:"mips"`
	RAM           int       `hcl:"ram"`
	UpBw          int64     `hcl:"up_bw"`
	DownBw        int64     `hcl:"down_bw"`
	RatePerMIPS   float64   `hcl:"rate_per_mips"`
	BusyPower     float64   `hcl:"busy_power"`
	IdlePower     float64   `hcl:"idle_power"`
	UplinkLatency *float64  `hcl:"uplink_latency,optional"`
	Cost          costBlock `hcl:"cost,block"`
}

type costBlock struct {
	Processing float64 `hcl:"processing"`
	Memory     float64 `hcl:"memory"`
	Storage    float64 `hcl:"storage"`
	Bandwidth  float64 `hcl:"bandwidth"`
}

// sensorBody is the content of a `sensor "name"` block.
type sensorBody struct {
	ID           int               `hcl:"id"`
	TupleType    string            `hcl:"tuple_type"`
	Gateway      string            `hcl:"gateway"`
	Latency      float64           `hcl:"latency"`
	Distribution distributionBlock `hcl:"distribution,block"`
}

// distributionBlock sets deviation for the normal kind and spread for the
// uniform kind.
type distributionBlock struct {
	Kind      string   `hcl:"kind"`
	Mean      float64  `hcl:"mean"`
	Deviation *float64 `hcl:"deviation,optional"`
	Spread    *float64 `hcl:"spread,optional"`
}

// actuatorBody is the content of an `actuator "name"` block.
type actuatorBody struct {
	ID           int     `hcl:"id"`
	ActuatorType string  `hcl:"actuator_type"`
	Gateway      string  `hcl:"gateway"`
	Latency      float64 `hcl:"latency"`
}
