// Package config defines the format-agnostic description of a physical
// topology, along with the Loader interface implemented by each concrete
// description format.
//
// The `config.Topology` is the single input of the declarative topology
// builder. Concrete loaders (HCL, YAML) live in separate packages and only
// translate their own syntax into this model; range checks shared by every
// format live here.
package config
