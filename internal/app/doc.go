// Package app contains the core application logic. It wires the topology
// builders, the application graph, the module mapping and the engine into a
// single run, decoupled from any specific entrypoint like a CLI.
package app
