package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Writer renders the description model as HCL that Loader reads back
// unchanged.
type Writer struct{}

// NewWriter creates a new HCL topology writer.
func NewWriter() *Writer {
	return &Writer{}
}

var _ config.Writer = (*Writer)(nil)

// Write implements config.Writer.
func (w *Writer) Write(ctx context.Context, t *config.Topology) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for _, n := range t.Nodes {
		body := root.AppendNewBlock("node", []string{n.Name}).Body()
		body.SetAttributeValue("id", cty.NumberIntVal(int64(n.ID)))
		if n.Parent != "" {
			body.SetAttributeValue("parent", cty.StringVal(n.Parent))
		}
		body.SetAttributeValue("level", cty.NumberIntVal(int64(n.Level)))
		body.SetAttributeValue("mips", cty.NumberIntVal(n.MIPS))
		body.SetAttributeValue("ram", cty.NumberIntVal(int64(n.RAM)))
		body.SetAttributeValue("up_bw", cty.NumberIntVal(n.UpBw))
		body.SetAttributeValue("down_bw", cty.NumberIntVal(n.DownBw))
		body.SetAttributeValue("rate_per_mips", cty.NumberFloatVal(n.RatePerMIPS))
		body.SetAttributeValue("busy_power", cty.NumberFloatVal(n.BusyPower))
		body.SetAttributeValue("idle_power", cty.NumberFloatVal(n.IdlePower))
		if n.Parent != "" || n.UplinkLatency != 0 {
			body.SetAttributeValue("uplink_latency", cty.NumberFloatVal(n.UplinkLatency))
		}

		cost := body.AppendNewBlock("cost", nil).Body()
		cost.SetAttributeValue("processing", cty.NumberFloatVal(n.Cost.Processing))
		cost.SetAttributeValue("memory", cty.NumberFloatVal(n.Cost.Memory))
		cost.SetAttributeValue("storage", cty.NumberFloatVal(n.Cost.Storage))
		cost.SetAttributeValue("bandwidth", cty.NumberFloatVal(n.Cost.Bandwidth))
		root.AppendNewline()
	}

	for _, s := range t.Sensors {
		body := root.AppendNewBlock("sensor", []string{s.Name}).Body()
		body.SetAttributeValue("id", cty.NumberIntVal(int64(s.ID)))
		body.SetAttributeValue("tuple_type", cty.StringVal(s.TupleType))
		body.SetAttributeValue("gateway", cty.StringVal(s.Gateway))
		body.SetAttributeValue("latency", cty.NumberFloatVal(s.Latency))

		dist := body.AppendNewBlock("distribution", nil).Body()
		dist.SetAttributeValue("kind", cty.StringVal(s.Distribution.Kind))
		dist.SetAttributeValue("mean", cty.NumberFloatVal(s.Distribution.Mean))
		needDeviation, needSpread := config.DistributionParams(s.Distribution.Kind)
		if needDeviation || s.Distribution.Deviation != 0 {
			dist.SetAttributeValue("deviation", cty.NumberFloatVal(s.Distribution.Deviation))
		}
		if needSpread || s.Distribution.Spread != 0 {
			dist.SetAttributeValue("spread", cty.NumberFloatVal(s.Distribution.Spread))
		}
		root.AppendNewline()
	}

	for _, a := range t.Actuators {
		body := root.AppendNewBlock("actuator", []string{a.Name}).Body()
		body.SetAttributeValue("id", cty.NumberIntVal(int64(a.ID)))
		body.SetAttributeValue("actuator_type", cty.StringVal(a.ActuatorType))
		body.SetAttributeValue("gateway", cty.StringVal(a.Gateway))
		body.SetAttributeValue("latency", cty.NumberFloatVal(a.Latency))
		root.AppendNewline()
	}

	ctxlog.FromContext(ctx).Debug("Rendered topology as HCL.", "nodes", len(t.Nodes), "sensors", len(t.Sensors), "actuators", len(t.Actuators))
	return hclwrite.Format(f.Bytes()), nil
}
