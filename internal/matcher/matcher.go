package matcher

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Matcher decides whether a device name is selected.
type Matcher interface {
	Match(name string) bool
	String() string
}

// Literal matches exactly one device name. Literal constraints are the only
// ones whose target must exist when the mapping is finalized.
type Literal string

// Match implements Matcher.
func (l Literal) Match(name string) bool { return string(l) == name }

// String implements Matcher.
func (l Literal) String() string { return string(l) }

// Prefix matches every name that starts with the prefix.
type Prefix string

// Match implements Matcher.
func (p Prefix) Match(name string) bool { return strings.HasPrefix(name, string(p)) }

// String implements Matcher.
func (p Prefix) String() string { return "prefix:" + string(p) }

// Regexp matches names against a compiled expression.
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp compiles expr.
func NewRegexp(expr string) (*Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid device regexp %q: %w", expr, err)
	}
	return &Regexp{re: re}, nil
}

// Match implements Matcher.
func (r *Regexp) Match(name string) bool { return r.re.MatchString(name) }

// String implements Matcher.
func (r *Regexp) String() string { return "regexp:" + r.re.String() }

// Glob matches names with shell-style wildcards.
type Glob string

// Match implements Matcher.
func (g Glob) Match(name string) bool {
	ok, err := path.Match(string(g), name)
	return err == nil && ok
}

// String implements Matcher.
func (g Glob) String() string { return string(g) }

// Func adapts an arbitrary predicate. Desc is used in logs and errors.
type Func struct {
	Desc string
	Fn   func(name string) bool
}

// Match implements Matcher.
func (f Func) Match(name string) bool { return f.Fn != nil && f.Fn(name) }

// String implements Matcher.
func (f Func) String() string { return "func:" + f.Desc }

// IsLiteral reports whether m selects a single, named device.
func IsLiteral(m Matcher) bool {
	_, ok := m.(Literal)
	return ok
}

// Parse converts the textual form of a device selector into a Matcher.
func Parse(raw string) (Matcher, error) {
	if raw == "" {
		return nil, fmt.Errorf("device selector cannot be empty")
	}

	switch {
	case strings.HasPrefix(raw, "prefix:"):
		p := strings.TrimPrefix(raw, "prefix:")
		if p == "" {
			return nil, fmt.Errorf("device selector %q has an empty prefix", raw)
		}
		return Prefix(p), nil
	case strings.HasPrefix(raw, "regexp:"):
		return NewRegexp(strings.TrimPrefix(raw, "regexp:"))
	case strings.ContainsAny(raw, "*?["):
		if _, err := path.Match(raw, ""); err != nil {
			return nil, fmt.Errorf("invalid device glob %q: %w", raw, err)
		}
		return Glob(raw), nil
	}
	return Literal(raw), nil
}
