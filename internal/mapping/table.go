package mapping

import "github.com/specialistvlad/fogtopo/internal/topology"

type pair struct {
	module string
	device string
}

// Table is the fully expanded, read-only mapping handed to the engine.
type Table struct {
	assignments []Assignment
	seen        map[pair]struct{}
}

func (t *Table) add(module string, n topology.FogNode) {
	key := pair{module: module, device: n.Name}
	if _, dup := t.seen[key]; dup {
		return
	}
	t.seen[key] = struct{}{}
	t.assignments = append(t.assignments, Assignment{Module: module, Device: n.Name, DeviceID: n.ID})
}

// Assignments returns every assignment in resolution order.
func (t *Table) Assignments() []Assignment {
	return append([]Assignment(nil), t.assignments...)
}

// Len returns the number of assignments.
func (t *Table) Len() int {
	return len(t.assignments)
}

// DevicesFor returns the devices a module is pinned to.
func (t *Table) DevicesFor(module string) []string {
	var devices []string
	for _, a := range t.assignments {
		if a.Module == module {
			devices = append(devices, a.Device)
		}
	}
	return devices
}

// ModulesOn returns the modules pinned to a device.
func (t *Table) ModulesOn(device string) []string {
	var modules []string
	for _, a := range t.assignments {
		if a.Device == device {
			modules = append(modules, a.Module)
		}
	}
	return modules
}

// ByModule groups the assignments by module name.
func (t *Table) ByModule() map[string][]string {
	out := make(map[string][]string)
	for _, a := range t.assignments {
		out[a.Module] = append(out[a.Module], a.Device)
	}
	return out
}
