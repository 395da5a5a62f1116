package pkgresolve

import "fmt"

// DependencyList is a positional sequence of constraints plus a keyed
// "platforms" section of additional constraints, conjoined only when the
// runtime platform tags include that key.
type DependencyList struct {
	Positional        []Constraint
	PlatformOverrides map[string][]Constraint
}

// DepsFor returns the positional constraints plus any platform-keyed
// overrides whose key is present in tags.
func (d DependencyList) DepsFor(tags PlatformTags) []Constraint {
	out := make([]Constraint, 0, len(d.Positional))
	out = append(out, d.Positional...)
	for tag, extra := range d.PlatformOverrides {
		if tags.Has(tag) {
			out = append(out, extra...)
		}
	}
	return out
}

// Package is an immutable candidate record: a name at a version, with its
// dependency list, platform support, and the rank of the manifest that
// contributed it (lower rank == higher priority).
type Package struct {
	Name         string
	Version      Version
	Deps         DependencyList
	Platforms    PlatformSpec
	ManifestRank int
}

// DepsFor filters the package's dependency list for the given runtime
// platform tags.
func (p Package) DepsFor(tags PlatformTags) []Constraint {
	return p.Deps.DepsFor(tags)
}

// Supports reports whether the package's PlatformSpec matches tags.
func (p Package) Supports(tags PlatformTags) bool {
	return p.Platforms.Matches(tags)
}

// IsBinary reports whether the package's version carries the "_HEX"
// binary-hash convention.
func (p Package) IsBinary() bool {
	return p.Version.IsBinary()
}

// Token renders the package as its "name-version" plan-emission form.
func (p Package) Token() string {
	return fmt.Sprintf("%s-%s", p.Name, p.Version.String())
}
