package hcl_adapter

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
)

// diagError turns decoder diagnostics into a Config error blamed on entity.
// Only the first error-severity diagnostic picks the invariant; the full set
// is kept as the cause.
func diagError(entity string, diags hcl.Diagnostics) error {
	invariant := fogerr.InvalidDescription
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		switch {
		case strings.HasPrefix(d.Summary, "Unsupported"):
			invariant = fogerr.UnknownField
		case strings.HasPrefix(d.Summary, "Missing"), strings.HasPrefix(d.Summary, "Insufficient"):
			invariant = fogerr.MissingField
		}
		return fogerr.WrapConfig(entity, invariant, diags)
	}
	return fogerr.WrapConfig(entity, invariant, diags)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
