package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
)

// decodeInto decodes one file body and appends its entities to model.
func (l *Loader) decodeInto(ctx context.Context, model *config.Topology, body hcl.Body) error {
	logger := ctxlog.FromContext(ctx)

	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return diagError("", diags)
	}

	for _, blk := range root.Nodes {
		n, err := translateNode(blk)
		if err != nil {
			return err
		}
		model.Nodes = append(model.Nodes, n)
	}
	for _, blk := range root.Sensors {
		s, err := translateSensor(blk)
		if err != nil {
			return err
		}
		model.Sensors = append(model.Sensors, s)
	}
	for _, blk := range root.Actuators {
		a, err := translateActuator(blk)
		if err != nil {
			return err
		}
		model.Actuators = append(model.Actuators, a)
	}

	logger.Debug("Decoded HCL body.", "nodes", len(root.Nodes), "sensors", len(root.Sensors), "actuators", len(root.Actuators))
	return nil
}

func translateNode(blk *labeledBlock) (*config.Node, error) {
	var b nodeBody
	if diags := gohcl.DecodeBody(blk.Body, nil, &b); diags.HasErrors() {
		return nil, diagError(blk.Name, diags)
	}
	if deref(b.Parent) != "" && b.UplinkLatency == nil {
		return nil, fogerr.Configf(blk.Name, fogerr.MissingField, "attribute uplink_latency is required on a node with a parent")
	}
	return &config.Node{
		ID:            b.ID,
		Name:          blk.Name,
		Parent:        deref(b.Parent),
		Level:         b.Level,
		MIPS:          b.MIPS,
		RAM:           b.RAM,
		UpBw:          b.UpBw,
		DownBw:        b.DownBw,
		RatePerMIPS:   b.RatePerMIPS,
		BusyPower:     b.BusyPower,
		IdlePower:     b.IdlePower,
		UplinkLatency: deref(b.UplinkLatency),
		Cost: config.Cost{
			Processing: b.Cost.Processing,
			Memory:     b.Cost.Memory,
			Storage:    b.Cost.Storage,
			Bandwidth:  b.Cost.Bandwidth,
		},
	}, nil
}

func translateSensor(blk *labeledBlock) (*config.Sensor, error) {
	var b sensorBody
	if diags := gohcl.DecodeBody(blk.Body, nil, &b); diags.HasErrors() {
		return nil, diagError(blk.Name, diags)
	}
	d := b.Distribution
	if err := config.RequireDistributionParams(blk.Name, d.Kind, d.Deviation != nil, d.Spread != nil); err != nil {
		return nil, err
	}
	return &config.Sensor{
		ID:        b.ID,
		Name:      blk.Name,
		TupleType: b.TupleType,
		Gateway:   b.Gateway,
		Latency:   b.Latency,
		Distribution: config.Distribution{
			Kind:      b.Distribution.Kind,
			Mean:      b.Distribution.Mean,
			Deviation: deref(b.Distribution.Deviation),
			Spread:    deref(b.Distribution.Spread),
		},
	}, nil
}

func translateActuator(blk *labeledBlock) (*config.Actuator, error) {
	var b actuatorBody
	if diags := gohcl.DecodeBody(blk.Body, nil, &b); diags.HasErrors() {
		return nil, diagError(blk.Name, diags)
	}
	return &config.Actuator{
		ID:           b.ID,
		Name:         blk.Name,
		ActuatorType: b.ActuatorType,
		Gateway:      b.Gateway,
		Latency:      b.Latency,
	}, nil
}
