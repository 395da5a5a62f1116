// Package pkgresolve implements the dependency resolver: version parsing
// and ordering, constraint matching, manifest candidate selection, and the
// depth-first transitive resolve algorithm. It has no dependency on the
// CLI, logging, or configuration layers that surround it.
package pkgresolve

import (
	"fmt"
	"strconv"
	"strings"
)

// tagWeight assigns negative ordinals to the well-known pre-release tags
// so that, e.g., "1.2alpha" sorts below "1.2". Unrecognized alphabetic
// tokens get weight zero: they only matter relative to each other, never
// against a numeric component (mixed numeric/tagged comparisons always
// favor the numeric side, see compareComponent).
var tagWeight = map[string]int{
	"work":  -5,
	"alpha": -4,
	"beta":  -3,
	"pre":   -2,
	"rc":    -1,
}

// orderedTagNames controls prefix-matching precedence; none of these are
// prefixes of one another so order doesn't currently matter, but this
// keeps the matching rule explicit rather than relying on map iteration.
var orderedTagNames = []string{"work", "alpha", "beta", "pre", "rc"}

// component is one piece of a parsed version, either a numeric run or an
// alphabetic tag.
type component struct {
	numeric bool
	num     int
	tag     string
	weight  int
}

// Version is a parsed, comparable representation of a version string of
// the form "[v]N(.N|letters)*(-N)?", with an optional opaque binary-hash
// suffix ("_HEX") that takes part in neither ordering nor equality.
type Version struct {
	raw        string
	components []component
	revision   int
	hasHash    bool
	hash       string
}

// String returns the canonical form of the version (parse . String .
// parse is idempotent on this form).
func (v Version) String() string {
	var b strings.Builder
	for i, c := range v.components {
		if i > 0 {
			b.WriteByte('.')
		}
		if c.numeric {
			b.WriteString(strconv.Itoa(c.num))
		} else {
			b.WriteString(c.tag)
		}
	}
	fmt.Fprintf(&b, "-%d", v.revision)
	if v.hasHash {
		b.WriteByte('_')
		b.WriteString(v.hash)
	}
	return b.String()
}

// Raw returns the exact string the Version was parsed from.
func (v Version) Raw() string { return v.raw }

// Hash returns the opaque binary-hash suffix and whether one was present.
func (v Version) Hash() (string, bool) { return v.hash, v.hasHash }

// IsBinary reports whether the version carries a "_HEX" binary-hash
// suffix identifying a specific build's dependency closure.
func (v Version) IsBinary() bool { return v.hasHash }

func isHexString(s string) bool {
	if len(s) < 4 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}

// ParseVersion parses a version string of the form
// "[v]N(.N|letters)*(-N)?(_HEX)?" into a comparable Version.
func ParseVersion(s string) (Version, error) {
	raw := s
	body := s
	if len(body) > 0 && (body[0] == 'v' || body[0] == 'V') {
		body = body[1:]
	}
	if body == "" {
		return Version{}, fmt.Errorf("invalid version %q: empty after stripping leading v", raw)
	}

	var hash string
	hasHash := false
	if idx := strings.LastIndexByte(body, '_'); idx > 0 {
		candidate := body[idx+1:]
		if isHexString(candidate) {
			hash = candidate
			hasHash = true
			body = body[:idx]
		}
	}

	revision := 0
	if idx := strings.LastIndexByte(body, '-'); idx > 0 {
		tail := body[idx+1:]
		if tail != "" && allDigits(tail) {
			n, err := strconv.Atoi(tail)
			if err != nil {
				return Version{}, fmt.Errorf("invalid version %q: bad revision %q", raw, tail)
			}
			revision = n
			body = body[:idx]
		}
	}

	if body == "" {
		return Version{}, fmt.Errorf("invalid version %q: no components", raw)
	}

	var comps []component
	for _, segment := range splitAny(body, ".-") {
		for _, tok := range splitDigitLetterRuns(segment) {
			if tok == "" {
				continue
			}
			comps = append(comps, classifyToken(tok))
		}
	}
	if len(comps) == 0 {
		return Version{}, fmt.Errorf("invalid version %q: no parseable components", raw)
	}

	return Version{
		raw:        raw,
		components: comps,
		revision:   revision,
		hasHash:    hasHash,
		hash:       hash,
	}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitAny(s string, cutset string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(cutset, r)
	})
}

// splitDigitLetterRuns splits a segment at transitions between digit runs
// and letter runs, e.g. "2alpha3" -> ["2", "alpha", "3"].
func splitDigitLetterRuns(s string) []string {
	var out []string
	start := 0
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}

func classifyToken(tok string) component {
	if allDigits(tok) {
		n, _ := strconv.Atoi(tok)
		return component{numeric: true, num: n}
	}
	lower := strings.ToLower(tok)
	weight := 0
	for _, name := range orderedTagNames {
		if strings.HasPrefix(lower, name) {
			weight = tagWeight[name]
			break
		}
	}
	return component{numeric: false, tag: lower, weight: weight}
}

// compareComponent compares a single position across two versions; either
// side may be nil when one version has fewer components than the other.
func compareComponent(a, b *component) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		if b.numeric {
			if b.num == 0 {
				return 0
			}
			return -1
		}
		return 1
	case b == nil:
		if a.numeric {
			if a.num == 0 {
				return 0
			}
			return 1
		}
		return -1
	case a.numeric && b.numeric:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	case !a.numeric && !b.numeric:
		if a.weight != b.weight {
			if a.weight < b.weight {
				return -1
			}
			return 1
		}
		return strings.Compare(a.tag, b.tag)
	case a.numeric:
		return 1
	default:
		return -1
	}
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other.
func (v Version) Compare(other Version) int {
	n := len(v.components)
	if len(other.components) > n {
		n = len(other.components)
	}
	for i := 0; i < n; i++ {
		var a, b *component
		if i < len(v.components) {
			a = &v.components[i]
		}
		if i < len(other.components) {
			b = &other.components[i]
		}
		if c := compareComponent(a, b); c != 0 {
			return c
		}
	}
	switch {
	case v.revision < other.revision:
		return -1
	case v.revision > other.revision:
		return 1
	default:
		return 0
	}
}

// Equal reports equality of parsed components and revision. The
// binary-hash suffix is opaque to ordering AND equality: a binary
// candidate's "_HEX" identity never affects whether it satisfies a
// version constraint, only whether its dependency closure validates.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// compatibleWith implements the "~>" operator: every component of bound
// except its last must appear in v and be equal, and v must be >= bound.
func (v Version) compatibleWith(bound Version) bool {
	prefixLen := len(bound.components) - 1
	if prefixLen < 0 {
		prefixLen = 0
	}
	if len(v.components) < prefixLen {
		return false
	}
	for i := 0; i < prefixLen; i++ {
		if compareComponent(&v.components[i], &bound.components[i]) != 0 {
			return false
		}
	}
	return v.Compare(bound) >= 0
}
