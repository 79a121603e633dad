// Package fogerr defines the error taxonomy shared by the topology,
// application and mapping builders. Every failure carries its kind, the
// offending entity and the name of the violated invariant so callers can
// report it without parsing messages.
package fogerr

import (
	"errors"
	"fmt"
)

// Kind classifies a build failure.
type Kind int

const (
	// Structural covers topology violations: unresolved parents, cycles,
	// duplicate identifiers, unresolved gateways.
	Structural Kind = iota + 1
	// Reference covers application graph violations: edges or loops naming
	// undeclared modules or unmatched tuple-type tags.
	Reference
	// Mapping covers module-mapping constraints naming undeclared modules or
	// devices.
	Mapping
	// Config covers malformed descriptions and out-of-range values.
	Config
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural error"
	case Reference:
		return "reference error"
	case Mapping:
		return "mapping error"
	case Config:
		return "config error"
	default:
		return "error"
	}
}

// Invariant names used across the builders.
const (
	UnresolvedParent   = "unresolved-parent"
	ParentCycle        = "parent-cycle"
	DuplicateID        = "duplicate-id"
	DuplicateName      = "duplicate-name"
	RootCount          = "single-root"
	LevelMismatch      = "level-depth"
	UnresolvedGateway  = "unresolved-gateway"
	NonLeafGateway     = "leaf-gateway"
	DuplicateModule    = "duplicate-module"
	UndeclaredModule   = "undeclared-module"
	UnmatchedTag       = "unmatched-tag"
	UnresolvedLoop     = "unresolved-loop-entry"
	UndeclaredDevice   = "undeclared-device"
	MissingField       = "required-field"
	UnknownField       = "unknown-field"
	OutOfRange         = "value-range"
	DuplicateRule      = "duplicate-selectivity"
	InvalidPattern     = "device-pattern"
	InvalidDescription = "description-syntax"
)

// Error is the single concrete error type returned by the builders.
type Error struct {
	Kind      Kind
	Entity    string
	Invariant string
	Detail    string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Entity != "" {
		msg += fmt.Sprintf(": %q", e.Entity)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Invariant != "" {
		msg += fmt.Sprintf(" [%s]", e.Invariant)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, entity, invariant, format string, args ...any) *Error {
	return &Error{
		Kind:      kind,
		Entity:    entity,
		Invariant: invariant,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// Structuralf returns a Structural error for the given entity.
func Structuralf(entity, invariant, format string, args ...any) *Error {
	return newError(Structural, entity, invariant, format, args...)
}

// Referencef returns a Reference error for the given entity.
func Referencef(entity, invariant, format string, args ...any) *Error {
	return newError(Reference, entity, invariant, format, args...)
}

// Mappingf returns a Mapping error for the given entity.
func Mappingf(entity, invariant, format string, args ...any) *Error {
	return newError(Mapping, entity, invariant, format, args...)
}

// Configf returns a Config error for the given entity.
func Configf(entity, invariant, format string, args ...any) *Error {
	return newError(Config, entity, invariant, format, args...)
}

// WrapConfig wraps a decoder or validator failure as a Config error.
func WrapConfig(entity, invariant string, err error) *Error {
	return &Error{Kind: Config, Entity: entity, Invariant: invariant, Err: err}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsKind reports whether err carries a fogerr.Error of the given kind.
func IsKind(err error, kind Kind) bool {
	fe, ok := As(err)
	return ok && fe.Kind == kind
}
