package appgraph

import (
	"context"
	"strings"

	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/topology"
)

// Builder accumulates the modules, edges, selectivity rules and loops of one
// application. Per-call checks cover only what the call itself can know;
// cross references are checked together by Validate so edges may name
// sensor and actuator tags before any topology exists.
type Builder struct {
	appID       string
	modules     []Module
	moduleIndex map[string]int
	edges       []Edge
	selectivity []Selectivity
	loops       []Loop
}

// New returns an empty builder for the application with the given id.
func New(appID string) *Builder {
	return &Builder{
		appID:       appID,
		moduleIndex: make(map[string]int),
	}
}

// AddModule declares a module. Names are unique within an application.
func (b *Builder) AddModule(name string, ram int) error {
	if strings.TrimSpace(name) == "" {
		return fogerr.Configf(b.appID, fogerr.MissingField, "module name must not be empty")
	}
	if ram < 0 {
		return fogerr.Configf(name, fogerr.OutOfRange, "module ram must not be negative, got %d", ram)
	}
	if _, exists := b.moduleIndex[name]; exists {
		return fogerr.Referencef(name, fogerr.DuplicateModule, "module is declared more than once")
	}
	b.moduleIndex[name] = len(b.modules)
	b.modules = append(b.modules, Module{Name: name, RAM: ram})
	return nil
}

// AddEdge records an edge. Endpoint references are resolved by Validate.
func (b *Builder) AddEdge(e Edge) error {
	label := e.Source + "->" + e.Destination
	switch {
	case e.Source == "" || e.Destination == "":
		return fogerr.Configf(label, fogerr.MissingField, "edge needs a source and a destination")
	case e.TupleType == "":
		return fogerr.Configf(label, fogerr.MissingField, "edge needs a tuple type")
	case e.Kind < SensorEdge || e.Kind > ActuatorEdge:
		return fogerr.Configf(label, fogerr.OutOfRange, "unknown edge kind %d", e.Kind)
	case e.Direction != Up && e.Direction != Down:
		return fogerr.Configf(label, fogerr.OutOfRange, "unknown edge direction %d", e.Direction)
	case e.CPULength < 0 || e.NetworkLength < 0:
		return fogerr.Configf(label, fogerr.OutOfRange, "edge lengths must not be negative")
	case e.Periodicity < 0:
		return fogerr.Configf(label, fogerr.OutOfRange, "periodicity must not be negative, got %v", e.Periodicity)
	case e.Periodicity > 0 && e.Kind != ActuatorEdge:
		return fogerr.Configf(label, fogerr.OutOfRange, "periodicity only applies to actuator edges")
	}
	b.edges = append(b.edges, e)
	return nil
}

// AddSelectivity records a fractional selectivity rule. Several rules may
// share (module, incoming); each must name a different outgoing type.
// Fractions are not required to sum to anything.
func (b *Builder) AddSelectivity(module, incoming, outgoing string, fraction float64) error {
	if fraction < 0 {
		return fogerr.Configf(module, fogerr.OutOfRange, "selectivity %s->%s must not be negative, got %v", incoming, outgoing, fraction)
	}
	if incoming == "" || outgoing == "" {
		return fogerr.Configf(module, fogerr.MissingField, "selectivity needs incoming and outgoing tuple types")
	}
	for _, rule := range b.selectivity {
		if rule.Module == module && rule.Incoming == incoming && rule.Outgoing == outgoing {
			return fogerr.Configf(module, fogerr.DuplicateRule, "selectivity %s->%s is already declared", incoming, outgoing)
		}
	}
	b.selectivity = append(b.selectivity, Selectivity{
		Module:   module,
		Incoming: incoming,
		Outgoing: outgoing,
		Fraction: fraction,
	})
	return nil
}

// AddLoop records a monitoring loop verbatim.
func (b *Builder) AddLoop(entries ...string) {
	b.loops = append(b.loops, Loop{Entries: append([]string(nil), entries...)})
}

// Validate checks every cross reference against the declared modules and the
// given topology. Edges are checked first, then selectivity rules, then
// loops, each in declaration order; the first violation is returned.
func (b *Builder) Validate(topo *topology.Topology) error {
	if topo == nil {
		return fogerr.Configf(b.appID, fogerr.MissingField, "application cannot be validated without a topology")
	}
	for _, e := range b.edges {
		if err := b.validateEdge(e, topo); err != nil {
			return err
		}
	}
	for _, rule := range b.selectivity {
		if !b.hasModule(rule.Module) {
			return fogerr.Referencef(rule.Module, fogerr.UndeclaredModule, "selectivity %s->%s names an undeclared module", rule.Incoming, rule.Outgoing)
		}
	}
	for i, loop := range b.loops {
		for _, entry := range loop.Entries {
			if b.hasModule(entry) || topo.HasSensorType(entry) || topo.HasActuatorType(entry) {
				continue
			}
			return fogerr.Referencef(entry, fogerr.UnresolvedLoop, "loop %d entry is neither a module nor a sensor/actuator tag", i)
		}
	}
	return nil
}

func (b *Builder) validateEdge(e Edge, topo *topology.Topology) error {
	requireModule := func(name string) error {
		if b.hasModule(name) {
			return nil
		}
		return fogerr.Referencef(name, fogerr.UndeclaredModule, "edge %s->%s (%s) names an undeclared module", e.Source, e.Destination, e.TupleType)
	}

	switch e.Kind {
	case SensorEdge:
		if !topo.HasSensorType(e.Source) {
			return fogerr.Referencef(e.Source, fogerr.UnmatchedTag, "edge source matches no sensor tuple type in the topology")
		}
		return requireModule(e.Destination)
	case ActuatorEdge:
		if err := requireModule(e.Source); err != nil {
			return err
		}
		if !topo.HasActuatorType(e.Destination) {
			return fogerr.Referencef(e.Destination, fogerr.UnmatchedTag, "edge destination matches no actuator type in the topology")
		}
		return nil
	default:
		if err := requireModule(e.Source); err != nil {
			return err
		}
		return requireModule(e.Destination)
	}
}

func (b *Builder) hasModule(name string) bool {
	_, ok := b.moduleIndex[name]
	return ok
}

// Build validates the application against topo and returns an immutable
// snapshot of it.
func (b *Builder) Build(ctx context.Context, topo *topology.Topology) (*Application, error) {
	logger := ctxlog.FromContext(ctx).With("app_id", b.appID)
	if err := b.Validate(topo); err != nil {
		return nil, err
	}
	logger.Debug("Application graph validated.", "modules", len(b.modules), "edges", len(b.edges), "selectivity_rules", len(b.selectivity), "loops", len(b.loops))

	loops := make([]Loop, len(b.loops))
	for i, l := range b.loops {
		loops[i] = Loop{Entries: append([]string(nil), l.Entries...)}
	}
	return &Application{
		id:          b.appID,
		modules:     append([]Module(nil), b.modules...),
		edges:       append([]Edge(nil), b.edges...),
		selectivity: append([]Selectivity(nil), b.selectivity...),
		loops:       loops,
	}, nil
}
