package dag

import (
	"fmt"
	"sort"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. It reports false
// if a node with the same ID already exists, in which case the graph is
// unchanged.
func (g *Graph) AddNode(id string) bool {
	if _, ok := g.nodes[id]; ok {
		return false
	}

	g.nodes[id] = &node{
		id:   id,
		seq:  len(g.order),
		deps: make(map[string]*node),
	}
	g.order = append(g.order, id)
	return true
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// In a topology this reads "toID is a child of fromID". An error is returned
// if either node does not exist. Self-references are accepted here and
// reported by DetectCycles, so a node naming itself as its own parent is
// diagnosed as a cycle.
func (g *Graph) AddEdge(fromID, toID string) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if _, exists := toNode.deps[fromID]; exists {
		return nil
	}
	toNode.deps[fromID] = fromNode
	fromNode.dependents = append(fromNode.dependents, toNode)

	return nil
}

// Dependencies returns the IDs of the nodes with an edge into the given node.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	deps := make([]*node, 0, len(n.deps))
	for _, dep := range n.deps {
		deps = append(deps, dep)
	}
	return idsBySeq(deps), nil
}

// Dependents returns the IDs of the nodes the given node has an edge to, in
// edge insertion order.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	ids := make([]string, len(n.dependents))
	for i, dependent := range n.dependents {
		ids[i] = dependent.id
	}
	return ids, nil
}

// Roots returns the IDs of nodes without incoming edges, in insertion order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.nodes[id].deps) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.Path, " -> "))
}

// DetectCycles checks the graph for any cycles. It returns a *CycleError
// describing the first cycle found, visiting nodes in insertion order.
func (g *Graph) DetectCycles() error {
	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			start := 0
			for i, id := range stack {
				if id == n.id {
					start = i
					break
				}
			}
			path := append(append([]string{}, stack[start:]...), n.id)
			return &CycleError{Path: path}
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

// TopologicalOrder returns every node ID such that each node appears after
// all of its dependencies. Ties are broken by insertion order. It fails with
// a *CycleError when the graph is not acyclic.
func (g *Graph) TopologicalOrder() ([]string, error) {
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	remaining := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		remaining[id] = len(n.deps)
	}

	order := make([]string, 0, len(g.order))
	queue := append([]string{}, g.Roots()...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, dependent := range g.nodes[id].dependents {
			remaining[dependent.id]--
			if remaining[dependent.id] == 0 {
				queue = append(queue, dependent.id)
			}
		}
	}
	return order, nil
}

func idsBySeq(nodes []*node) []string {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].seq < nodes[j].seq })
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.id
	}
	return ids
}
