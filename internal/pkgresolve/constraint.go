package pkgresolve

import (
	"fmt"
	"strings"
)

// Op is a constraint comparison operator.
type Op string

// Recognized operators. OpNone matches any version.
const (
	OpNone    Op = ""
	OpEqual   Op = "=="
	OpNotEq   Op = "~="
	OpLess    Op = "<"
	OpLessEq  Op = "<="
	OpGreater Op = ">"
	OpGreaterEq Op = ">="
	OpCompat  Op = "~>"
)

// operatorTokens is the longest-match-first recognition order
// ("=" is an alias for "==", handled separately).
var operatorTokens = []Op{OpEqual, OpNotEq, OpLessEq, OpGreaterEq, OpCompat, OpLess, OpGreater}

// Constraint is a name with an optional operator and version bound.
// A zero-value-op Constraint (Op == OpNone) matches any version of Name.
type Constraint struct {
	Name    string
	Op      Op
	Version Version
}

// String renders the constraint back to its textual form.
func (c Constraint) String() string {
	if c.Op == OpNone {
		return c.Name
	}
	return fmt.Sprintf("%s %s %s", c.Name, c.Op, c.Version.String())
}

// ParseConstraint parses "name", "name op version", or "name version"
// (bare version implies "=="). Whitespace around the operator is
// optional: "foo>=1.0" and "foo >= 1.0" parse identically.
func ParseConstraint(s string) (Constraint, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Constraint{}, fmt.Errorf("invalid constraint %q: empty", s)
	}

	if pos, tok := findOperator(trimmed); pos >= 0 {
		name := strings.TrimSpace(trimmed[:pos])
		verStr := strings.TrimSpace(trimmed[pos+len(tok):])
		if name == "" {
			return Constraint{}, fmt.Errorf("invalid constraint %q: missing package name", s)
		}
		op := tok
		if op == "=" {
			op = string(OpEqual)
		}
		ver, err := ParseVersion(verStr)
		if err != nil {
			return Constraint{}, fmt.Errorf("invalid constraint %q: %w", s, err)
		}
		return Constraint{Name: name, Op: Op(op), Version: ver}, nil
	}

	// No operator anywhere in the string: either a bare name, or the
	// "name version" space-separated form (implied "==").
	name, rest, found := cutFirstSpace(trimmed)
	if !found {
		return Constraint{Name: name, Op: OpNone}, nil
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Constraint{Name: name, Op: OpNone}, nil
	}
	ver, err := ParseVersion(rest)
	if err != nil {
		return Constraint{}, fmt.Errorf("invalid constraint %q: %w", s, err)
	}
	return Constraint{Name: name, Op: OpEqual, Version: ver}, nil
}

// cutFirstSpace splits at the first space or tab; tail keeps any
// whitespace that follows it.
func cutFirstSpace(s string) (head, tail string, found bool) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

// findOperator scans s for the first position at which a recognized
// operator token begins, trying longest-match-first at each position so
// e.g. ">=" is not mistaken for ">" followed by "=". Returns pos == -1 if
// no operator token occurs anywhere in s.
func findOperator(s string) (pos int, tok string) {
	for i := 0; i < len(s); i++ {
		if t, ok := matchOperatorAt(s[i:]); ok {
			return i, t
		}
	}
	return -1, ""
}

func matchOperatorAt(rest string) (op string, ok bool) {
	for _, candidate := range operatorTokens {
		tok := string(candidate)
		if tok == "" {
			continue
		}
		if strings.HasPrefix(rest, tok) {
			return tok, true
		}
	}
	if strings.HasPrefix(rest, "=") {
		return "=", true
	}
	return "", false
}

// Satisfies reports whether ver satisfies the constraint.
func (c Constraint) Satisfies(ver Version) bool {
	switch c.Op {
	case OpNone:
		return true
	case OpEqual:
		return ver.Equal(c.Version)
	case OpNotEq:
		return !ver.Equal(c.Version)
	case OpLess:
		return ver.Compare(c.Version) < 0
	case OpLessEq:
		return ver.Compare(c.Version) <= 0
	case OpGreater:
		return ver.Compare(c.Version) > 0
	case OpGreaterEq:
		return ver.Compare(c.Version) >= 0
	case OpCompat:
		return ver.compatibleWith(c.Version)
	default:
		return false
	}
}
