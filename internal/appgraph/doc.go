// Package appgraph builds the application side of a fog deployment: named
// modules joined by typed edges, fractional selectivity rules and the loops
// whose latency the engine monitors.
//
// The graph is general: cycles among modules are allowed. Module names and
// sensor/actuator tags are the only links to the physical topology, and
// they are checked once, by Validate, against a built topology.
package appgraph
