// Package pathkey implements TypedPath, the canonical string-keyed address
// used for blackboard entries, animation binding targets, and graph write
// destinations: ns1/ns2/target.field.sub.
package pathkey

import (
	"errors"
	"strings"
)

// ErrInvalidPath is returned when a path string fails to parse: an empty
// segment, a segment containing whitespace, or a missing target.
var ErrInvalidPath = errors.New("pathkey: invalid path")

// TypedPath is a canonical, totally-ordered address: an ordered sequence of
// non-empty namespace segments, a non-empty target segment, and an ordered
// sequence of non-empty field segments. The zero TypedPath is invalid; use
// Parse to construct one.
type TypedPath struct {
	namespaces []string
	target     string
	fields     []string
}

// New constructs a TypedPath directly from its components, validating each
// segment the same way Parse does.
func New(namespaces []string, target string, fields []string) (TypedPath, error) {
	for _, ns := range namespaces {
		if !validSegment(ns) {
			return TypedPath{}, ErrInvalidPath
		}
	}
	if !validSegment(target) {
		return TypedPath{}, ErrInvalidPath
	}
	for _, f := range fields {
		if !validSegment(f) {
			return TypedPath{}, ErrInvalidPath
		}
	}
	nsCopy := append([]string(nil), namespaces...)
	fCopy := append([]string(nil), fields...)
	return TypedPath{namespaces: nsCopy, target: target, fields: fCopy}, nil
}

// Parse decodes the wire form "ns1/ns2/target.field.sub" into a TypedPath.
// Every "/"-separated segment before the last, and every "."-separated
// segment after it, must be non-empty and free of whitespace; violations
// return ErrInvalidPath.
func Parse(s string) (TypedPath, error) {
	if s == "" {
		return TypedPath{}, ErrInvalidPath
	}
	slashParts := strings.Split(s, "/")
	if len(slashParts) < 1 {
		return TypedPath{}, ErrInvalidPath
	}

	last := slashParts[len(slashParts)-1]
	namespaces := slashParts[:len(slashParts)-1]

	dotParts := strings.Split(last, ".")
	target := dotParts[0]
	var fields []string
	if len(dotParts) > 1 {
		fields = dotParts[1:]
	}

	return New(namespaces, target, fields)
}

// validSegment reports whether s is non-empty and contains no whitespace or
// path/field separators.
func validSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case '/', '.', ' ', '\t', '\r', '\n':
			return false
		}
	}
	return true
}

// Namespaces returns the ordered namespace segments. The returned slice
// aliases internal storage and must not be mutated.
func (p TypedPath) Namespaces() []string { return p.namespaces }

// Target returns the target segment.
func (p TypedPath) Target() string { return p.target }

// Fields returns the ordered field segments. The returned slice aliases
// internal storage and must not be mutated.
func (p TypedPath) Fields() []string { return p.fields }

// String renders the canonical wire form: Parse(p.String()) == p for every
// valid p.
func (p TypedPath) String() string {
	var b strings.Builder
	for _, ns := range p.namespaces {
		b.WriteString(ns)
		b.WriteByte('/')
	}
	b.WriteString(p.target)
	for _, f := range p.fields {
		b.WriteByte('.')
		b.WriteString(f)
	}
	return b.String()
}

// Equal reports component-wise equality.
func (p TypedPath) Equal(o TypedPath) bool {
	return p.String() == o.String()
}

// Less implements the total lexicographic ordering over paths: namespaces
// compared component-wise, then target, then fields component-wise.
func (p TypedPath) Less(o TypedPath) bool {
	if c := compareSegments(p.namespaces, o.namespaces); c != 0 {
		return c < 0
	}
	if p.target != o.target {
		return p.target < o.target
	}
	return compareSegments(p.fields, o.fields) < 0
}

func compareSegments(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes the TypedPath as its canonical string form.
func (p TypedPath) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strings.ReplaceAll(p.String(), `"`, `\"`) + `"`), nil
}

// UnmarshalJSON decodes a TypedPath from its canonical string form.
func (p *TypedPath) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
