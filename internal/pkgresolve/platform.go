package pkgresolve

import "strings"

// PlatformTags is the runtime set of platform tags supplied by the
// caller, e.g. {"unix", "linux"}.
type PlatformTags map[string]struct{}

// DefaultPlatformTags returns the default tag set {unix, linux}.
func DefaultPlatformTags() PlatformTags {
	return NewPlatformTags("unix", "linux")
}

// NewPlatformTags builds a tag set from individual tag strings.
func NewPlatformTags(tags ...string) PlatformTags {
	set := make(PlatformTags, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether tag is present in the set.
func (p PlatformTags) Has(tag string) bool {
	_, ok := p[tag]
	return ok
}

// PlatformSpec is the set of platform tags a package supports, with
// optional negation. The empty spec means "any".
type PlatformSpec struct {
	positive []string
	negative []string
}

// AnyPlatform is the PlatformSpec with no constraints: it always matches.
var AnyPlatform = PlatformSpec{}

// NewPlatformSpec builds a PlatformSpec from raw tag tokens, where a
// leading "!" marks a negated tag.
func NewPlatformSpec(tokens ...string) PlatformSpec {
	var spec PlatformSpec
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "!") {
			spec.negative = append(spec.negative, strings.TrimPrefix(t, "!"))
		} else {
			spec.positive = append(spec.positive, t)
		}
	}
	return spec
}

// IsAny reports whether the PlatformSpec imposes no restriction.
func (p PlatformSpec) IsAny() bool {
	return len(p.positive) == 0 && len(p.negative) == 0
}

// Matches implements the platform filter:
//  1. AnyPlatform accepts unconditionally.
//  2. any negated tag present in required rejects.
//  3. a positive tag list requires at least one match.
//  4. negated-only specs (no positive tags) accept iff no negation matched.
func (p PlatformSpec) Matches(required PlatformTags) bool {
	if p.IsAny() {
		return true
	}
	for _, neg := range p.negative {
		if required.Has(neg) {
			return false
		}
	}
	if len(p.positive) == 0 {
		return true
	}
	for _, pos := range p.positive {
		if required.Has(pos) {
			return true
		}
	}
	return false
}
