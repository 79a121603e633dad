package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct {
	validate *validator.Validate
}

// NewLoader creates a new YAML topology loader.
func NewLoader() *Loader {
	return &Loader{validate: validator.New()}
}

var _ config.Loader = (*Loader)(nil)

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Topology, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading topology file %s: %w", path, err)
	}
	return l.Parse(ctx, src, path)
}

// Parse implements config.Loader.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Topology, error) {
	logger := ctxlog.FromContext(ctx)

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fogerr.Configf(filename, fogerr.MissingField, "document is empty")
		}
		invariant := fogerr.InvalidDescription
		if strings.Contains(err.Error(), "not found in type") {
			invariant = fogerr.UnknownField
		}
		return nil, fogerr.WrapConfig(filename, invariant, err)
	}

	if err := l.validate.Struct(&doc); err != nil {
		return nil, missingFieldError(&doc, err)
	}

	for _, s := range doc.Sensors {
		d := s.Distribution
		if err := config.RequireDistributionParams(*s.Name, *d.Kind, d.Deviation != nil, d.Spread != nil); err != nil {
			return nil, err
		}
	}

	model := translate(&doc)
	logger.Debug("YAML loading complete.", "file", filename, "nodes", len(model.Nodes), "sensors", len(model.Sensors), "actuators", len(model.Actuators))
	return model, nil
}

// missingFieldError reports the first absent key, blaming the entity that
// owns it when that entity has a name.
func missingFieldError(doc *document, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fogerr.WrapConfig("", fogerr.InvalidDescription, err)
	}
	fe := verrs[0]
	ns := fe.Namespace()

	entity := ""
	switch {
	case strings.HasPrefix(ns, "document.Nodes["):
		if i, ok := index(ns, "document.Nodes["); ok && i < len(doc.Nodes) && doc.Nodes[i] != nil {
			entity = deref(doc.Nodes[i].Name)
		}
	case strings.HasPrefix(ns, "document.Sensors["):
		if i, ok := index(ns, "document.Sensors["); ok && i < len(doc.Sensors) && doc.Sensors[i] != nil {
			entity = deref(doc.Sensors[i].Name)
		}
	case strings.HasPrefix(ns, "document.Actuators["):
		if i, ok := index(ns, "document.Actuators["); ok && i < len(doc.Actuators) && doc.Actuators[i] != nil {
			entity = deref(doc.Actuators[i].Name)
		}
	}
	return fogerr.Configf(entity, fogerr.MissingField, "key %s is required", strings.TrimPrefix(ns, "document."))
}

func index(ns, prefix string) (int, bool) {
	rest := strings.TrimPrefix(ns, prefix)
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return 0, false
	}
	i, err := strconv.Atoi(rest[:end])
	return i, err == nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func translate(doc *document) *config.Topology {
	model := &config.Topology{}
	for _, n := range doc.Nodes {
		model.Nodes = append(model.Nodes, &config.Node{
			ID:            *n.ID,
			Name:          *n.Name,
			Parent:        n.Parent,
			Level:         *n.Level,
			MIPS:          *n.MIPS,
			RAM:           *n.RAM,
			UpBw:          *n.UpBw,
			DownBw:        *n.DownBw,
			RatePerMIPS:   *n.RatePerMIPS,
			BusyPower:     *n.BusyPower,
			IdlePower:     *n.IdlePower,
			UplinkLatency: deref(n.UplinkLatency),
			Cost: config.Cost{
				Processing: *n.Cost.Processing,
				Memory:     *n.Cost.Memory,
				Storage:    *n.Cost.Storage,
				Bandwidth:  *n.Cost.Bandwidth,
			},
		})
	}
	for _, s := range doc.Sensors {
		model.Sensors = append(model.Sensors, &config.Sensor{
			ID:        *s.ID,
			Name:      *s.Name,
			TupleType: *s.TupleType,
			Gateway:   *s.Gateway,
			Latency:   *s.Latency,
			Distribution: config.Distribution{
				Kind:      *s.Distribution.Kind,
				Mean:      *s.Distribution.Mean,
				Deviation: deref(s.Distribution.Deviation),
				Spread:    deref(s.Distribution.Spread),
			},
		})
	}
	for _, a := range doc.Actuators {
		model.Actuators = append(model.Actuators, &config.Actuator{
			ID:           *a.ID,
			Name:         *a.Name,
			ActuatorType: *a.ActuatorType,
			Gateway:      *a.Gateway,
			Latency:      *a.Latency,
		})
	}
	return model
}
