package dag

// Graph is a collection of nodes and directed edges between them. Nodes are
// identified by string IDs and remember their insertion order so every
// traversal is deterministic.
//
// A Graph is built and queried from a single goroutine.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order lists node IDs in insertion order.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// seq is the insertion position, used to order traversals.
	seq int
	// deps holds the nodes with an edge into this node (predecessors).
	deps map[string]*node
	// dependents holds the nodes this node has an edge to (successors), in
	// the order the edges were added.
	dependents []*node
}

// CycleError reports a cycle found by DetectCycles. Path starts and ends
// with the same node ID.
type CycleError struct {
	Path []string
}
