package config

import (
	"context"
)

// Loader is the interface for a format-specific topology description loader.
type Loader interface {
	// Load reads a description from the given path and translates it into
	// the format-agnostic model. Unknown or missing fields are errors.
	Load(ctx context.Context, path string) (*Topology, error)

	// Parse is Load for an in-memory description; filename is used only in
	// diagnostics.
	Parse(ctx context.Context, src []byte, filename string) (*Topology, error)
}

// Writer serializes the format-agnostic model back into a concrete format.
type Writer interface {
	Write(ctx context.Context, t *Topology) ([]byte, error)
}
