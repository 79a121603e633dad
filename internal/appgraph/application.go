package appgraph

// Application is a validated, read-only application graph.
type Application struct {
	id          string
	modules     []Module
	edges       []Edge
	selectivity []Selectivity
	loops       []Loop
}

// ID returns the application identifier.
func (a *Application) ID() string { return a.id }

// Modules returns the modules in declaration order.
func (a *Application) Modules() []Module { return append([]Module(nil), a.modules...) }

// Edges returns the edges in declaration order.
func (a *Application) Edges() []Edge { return append([]Edge(nil), a.edges...) }

// Selectivity returns every selectivity rule in declaration order.
func (a *Application) Selectivity() []Selectivity {
	return append([]Selectivity(nil), a.selectivity...)
}

// Loops returns copies of the monitoring loops.
func (a *Application) Loops() []Loop {
	loops := make([]Loop, len(a.loops))
	for i, l := range a.loops {
		loops[i] = Loop{Entries: append([]string(nil), l.Entries...)}
	}
	return loops
}

// Module looks a module up by name.
func (a *Application) Module(name string) (Module, bool) {
	for _, m := range a.modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// HasModule reports whether a module with the given name is declared.
func (a *Application) HasModule(name string) bool {
	_, ok := a.Module(name)
	return ok
}

// RulesFor returns the selectivity rules of a module for one incoming type.
func (a *Application) RulesFor(module, incoming string) []Selectivity {
	var rules []Selectivity
	for _, r := range a.selectivity {
		if r.Module == module && r.Incoming == incoming {
			rules = append(rules, r)
		}
	}
	return rules
}

// EdgesFrom returns the edges whose source is the given endpoint.
func (a *Application) EdgesFrom(source string) []Edge {
	var edges []Edge
	for _, e := range a.edges {
		if e.Source == source {
			edges = append(edges, e)
		}
	}
	return edges
}
