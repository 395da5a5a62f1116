// Package ingest normalizes raw manifest documents — YAML or JSON, plain
// or compressed, optionally PGP-signed — into the candidate tables the
// resolver core consumes. None of this package is imported by
// internal/pkgresolve; it only produces pkgresolve.Manifest values.
package ingest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
)

// RawPackage is one entry in a manifest document, in the on-disk shape
// before it is turned into an immutable pkgresolve.Package.
type RawPackage struct {
	Name             string              `yaml:"name" json:"name"`
	Version          string              `yaml:"version" json:"version"`
	Requires         []string            `yaml:"requires" json:"requires"`
	Platforms        []string            `yaml:"platforms" json:"platforms"`
	PlatformRequires map[string][]string `yaml:"platform_requires" json:"platform_requires"`
}

// Document is the top-level shape of a manifest file.
type Document struct {
	Packages []RawPackage `yaml:"packages" json:"packages"`
}

// ParseDocument validates data against the manifest schema and decodes it
// into a Document. data may be YAML or JSON (YAML is a superset here).
func ParseDocument(data []byte) (*Document, error) {
	if err := ValidateManifestYAML(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest document: %w", err)
	}
	return &doc, nil
}

// BuildManifest converts a parsed Document into a *pkgresolve.Manifest,
// preserving declaration order as Manifest.Add's insertion order.
func BuildManifest(doc *Document) (*pkgresolve.Manifest, error) {
	m := pkgresolve.NewManifest()
	for _, raw := range doc.Packages {
		pkg, err := raw.toPackage()
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", raw.Name, err)
		}
		m.Add(pkg)
	}
	return m, nil
}

func (r RawPackage) toPackage() (pkgresolve.Package, error) {
	version, err := pkgresolve.ParseVersion(r.Version)
	if err != nil {
		return pkgresolve.Package{}, fmt.Errorf("version %q: %w", r.Version, err)
	}

	positional, err := parseConstraints(r.Requires)
	if err != nil {
		return pkgresolve.Package{}, err
	}

	var overrides map[string][]pkgresolve.Constraint
	if len(r.PlatformRequires) > 0 {
		overrides = make(map[string][]pkgresolve.Constraint, len(r.PlatformRequires))
		for tag, reqs := range r.PlatformRequires {
			cs, err := parseConstraints(reqs)
			if err != nil {
				return pkgresolve.Package{}, fmt.Errorf("platform %q: %w", tag, err)
			}
			overrides[tag] = cs
		}
	}

	return pkgresolve.Package{
		Name:    r.Name,
		Version: version,
		Deps: pkgresolve.DependencyList{
			Positional:        positional,
			PlatformOverrides: overrides,
		},
		Platforms: pkgresolve.NewPlatformSpec(r.Platforms...),
	}, nil
}

func parseConstraints(raw []string) ([]pkgresolve.Constraint, error) {
	out := make([]pkgresolve.Constraint, 0, len(raw))
	for _, s := range raw {
		c, err := pkgresolve.ParseConstraint(s)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", s, err)
		}
		out = append(out, c)
	}
	return out, nil
}
