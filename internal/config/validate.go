package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
)

// validate is a singleton validator instance; it caches struct metadata.
var validate = validator.New()

// Validate range-checks every entry of a description. It does not resolve
// references between entries; that is the topology builder's job.
func Validate(t *Topology) error {
	if t == nil {
		return fogerr.Configf("", fogerr.MissingField, "topology description is nil")
	}
	if err := validate.Struct(t); err != nil {
		return formatValidationError(t, err)
	}
	return nil
}

// RequireDistributionParams fails when a description omits a parameter its
// distribution kind reads. Loaders call it before defaulting absent values.
func RequireDistributionParams(entity, kind string, hasDeviation, hasSpread bool) error {
	needDeviation, needSpread := DistributionParams(kind)
	switch {
	case needDeviation && !hasDeviation:
		return fogerr.Configf(entity, fogerr.MissingField, "distribution %q requires deviation", kind)
	case needSpread && !hasSpread:
		return fogerr.Configf(entity, fogerr.MissingField, "distribution %q requires spread", kind)
	}
	return nil
}

// formatValidationError converts the first validator failure into a Config
// error naming the offending entity.
func formatValidationError(t *Topology, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fogerr.WrapConfig("", fogerr.InvalidDescription, err)
	}
	fe := verrs[0]

	invariant := fogerr.OutOfRange
	if fe.Tag() == "required" || fe.Tag() == "min" {
		invariant = fogerr.MissingField
	}
	return fogerr.Configf(entityFor(t, fe.Namespace()), invariant,
		"field %s fails %q (value %v)", fieldPath(fe.Namespace()), tagText(fe), fe.Value())
}

// entityFor maps a validator namespace like "Topology.Nodes[3].MIPS" back to
// the name of the entry it belongs to.
func entityFor(t *Topology, namespace string) string {
	var idx int
	switch {
	case scanIndex(namespace, "Topology.Nodes[", &idx) && idx < len(t.Nodes) && t.Nodes[idx] != nil:
		return t.Nodes[idx].Name
	case scanIndex(namespace, "Topology.Sensors[", &idx) && idx < len(t.Sensors) && t.Sensors[idx] != nil:
		return t.Sensors[idx].Name
	case scanIndex(namespace, "Topology.Actuators[", &idx) && idx < len(t.Actuators) && t.Actuators[idx] != nil:
		return t.Actuators[idx].Name
	}
	return ""
}

func scanIndex(namespace, prefix string, idx *int) bool {
	if !strings.HasPrefix(namespace, prefix) {
		return false
	}
	_, err := fmt.Sscanf(namespace[len(prefix):], "%d]", idx)
	return err == nil
}

func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "]."); i >= 0 {
		return namespace[i+2:]
	}
	return strings.TrimPrefix(namespace, "Topology.")
}

func tagText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
