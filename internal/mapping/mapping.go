// Package mapping resolves declared module-placement intent into the
// concrete (module, device) pairs consumed by the placement engine. It does
// no placement of its own.
package mapping

import (
	"context"

	"github.com/specialistvlad/fogtopo/internal/appgraph"
	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
	"github.com/specialistvlad/fogtopo/internal/matcher"
	"github.com/specialistvlad/fogtopo/internal/topology"
)

// Constraint binds a module to the devices selected by Matcher, or to the
// topology root when Root is set.
type Constraint struct {
	Module  string
	Matcher matcher.Matcher
	Root    bool
}

// String describes the constraint's target.
func (c Constraint) String() string {
	if c.Root {
		return "root"
	}
	return c.Matcher.String()
}

// Assignment is one concrete placement constraint.
type Assignment struct {
	Module   string
	Device   string
	DeviceID int
}

// Resolver collects constraints until Finalize.
type Resolver struct {
	constraints []Constraint
	err         error
}

// New returns an empty resolver.
func New() *Resolver {
	return &Resolver{}
}

// Assign binds a module to a device name or a device selector in the textual
// form accepted by matcher.Parse. A malformed selector is remembered and
// reported by Finalize, so a chain of Assign calls needs no error checks.
func (r *Resolver) Assign(module, deviceNameOrPattern string) *Resolver {
	m, err := matcher.Parse(deviceNameOrPattern)
	if err != nil {
		if r.err == nil {
			r.err = fogerr.Mappingf(module, fogerr.InvalidPattern, "%v", err)
		}
		return r
	}
	return r.AssignPattern(module, m)
}

// AssignPattern binds a module to every device selected by m. A nil m is
// reported by Finalize.
func (r *Resolver) AssignPattern(module string, m matcher.Matcher) *Resolver {
	if m == nil {
		if r.err == nil {
			r.err = fogerr.Mappingf(module, fogerr.InvalidPattern, "device selector is nil")
		}
		return r
	}
	r.constraints = append(r.constraints, Constraint{Module: module, Matcher: m})
	return r
}

// AssignRoot binds a module to the root of whatever topology the mapping is
// finalized against.
func (r *Resolver) AssignRoot(module string) *Resolver {
	r.constraints = append(r.constraints, Constraint{Module: module, Root: true})
	return r
}

// Constraints returns the declared constraints in order.
func (r *Resolver) Constraints() []Constraint {
	return append([]Constraint(nil), r.constraints...)
}

// Finalize checks every constraint against app and topo and expands it into
// assignments. Selectors are evaluated against node names in id order and
// may match nothing. Repeated (module, device) pairs are kept once.
func (r *Resolver) Finalize(ctx context.Context, app *appgraph.Application, topo *topology.Topology) (*Table, error) {
	logger := ctxlog.FromContext(ctx)
	if r.err != nil {
		return nil, r.err
	}
	if app == nil || topo == nil {
		return nil, fogerr.Configf("", fogerr.MissingField, "mapping needs both an application and a topology")
	}

	table := &Table{seen: make(map[pair]struct{})}
	nodes := topo.Nodes()
	for _, c := range r.constraints {
		if !app.HasModule(c.Module) {
			return nil, fogerr.Mappingf(c.Module, fogerr.UndeclaredModule, "mapping to %s names a module absent from application %q", c, app.ID())
		}

		switch {
		case c.Root:
			root := topo.Root()
			table.add(c.Module, root)
		case matcher.IsLiteral(c.Matcher):
			n, ok := topo.NodeByName(c.Matcher.String())
			if !ok {
				return nil, fogerr.Mappingf(c.Matcher.String(), fogerr.UndeclaredDevice, "module %q is mapped to a device absent from the topology", c.Module)
			}
			table.add(c.Module, n)
		default:
			matched := 0
			for _, n := range nodes {
				if c.Matcher.Match(n.Name) {
					table.add(c.Module, n)
					matched++
				}
			}
			if matched == 0 {
				logger.Warn("Device selector matched no devices.", "module", c.Module, "selector", c.String())
				continue
			}
			logger.Debug("Expanded device selector.", "module", c.Module, "selector", c.String(), "matched", matched)
		}
	}

	logger.Debug("Module mapping finalized.", "constraints", len(r.constraints), "assignments", len(table.assignments))
	table.seen = nil
	return table, nil
}
