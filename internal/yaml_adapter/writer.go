package yaml_adapter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Writer renders the description model as YAML.
type Writer struct{}

// NewWriter creates a new YAML topology writer.
func NewWriter() *Writer {
	return &Writer{}
}

var _ config.Writer = (*Writer)(nil)

// Write implements config.Writer.
func (w *Writer) Write(ctx context.Context, t *config.Topology) ([]byte, error) {
	doc := document{}
	for _, n := range t.Nodes {
		var uplink *float64
		if n.Parent != "" || n.UplinkLatency != 0 {
			uplink = ptr(n.UplinkLatency)
		}
		doc.Nodes = append(doc.Nodes, &node{
			ID:            ptr(n.ID),
			Name:          ptr(n.Name),
			Parent:        n.Parent,
			Level:         ptr(n.Level),
			MIPS:          ptr(n.MIPS),
			RAM:           ptr(n.RAM),
			UpBw:          ptr(n.UpBw),
			DownBw:        ptr(n.DownBw),
			RatePerMIPS:   ptr(n.RatePerMIPS),
			BusyPower:     ptr(n.BusyPower),
			IdlePower:     ptr(n.IdlePower),
			UplinkLatency: uplink,
			Cost: &cost{
				Processing: ptr(n.Cost.Processing),
				Memory:     ptr(n.Cost.Memory),
				Storage:    ptr(n.Cost.Storage),
				Bandwidth:  ptr(n.Cost.Bandwidth),
			},
		})
	}
	for _, s := range t.Sensors {
		needDeviation, needSpread := config.DistributionParams(s.Distribution.Kind)
		var deviation, spread *float64
		if needDeviation || s.Distribution.Deviation != 0 {
			deviation = ptr(s.Distribution.Deviation)
		}
		if needSpread || s.Distribution.Spread != 0 {
			spread = ptr(s.Distribution.Spread)
		}
		doc.Sensors = append(doc.Sensors, &sensor{
			ID:        ptr(s.ID),
			Name:      ptr(s.Name),
			TupleType: ptr(s.TupleType),
			Gateway:   ptr(s.Gateway),
			Latency:   ptr(s.Latency),
			Distribution: &distribution{
				Kind:      ptr(s.Distribution.Kind),
				Mean:      ptr(s.Distribution.Mean),
				Deviation: deviation,
				Spread:    spread,
			},
		})
	}
	for _, a := range t.Actuators {
		doc.Actuators = append(doc.Actuators, &actuator{
			ID:           ptr(a.ID),
			Name:         ptr(a.Name),
			ActuatorType: ptr(a.ActuatorType),
			Gateway:      ptr(a.Gateway),
			Latency:      ptr(a.Latency),
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode topology as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode topology as YAML: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Rendered topology as YAML.", "nodes", len(t.Nodes), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func ptr[T any](v T) *T {
	return &v
}
