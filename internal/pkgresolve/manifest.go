package pkgresolve

// Manifest is an ordered index: for each package name, an ordered
// sequence of candidate Packages that preserves insertion order. It is
// never re-sorted by name or version; only Add order matters.
type Manifest struct {
	names      []string
	candidates map[string][]Package
}

// NewManifest returns an empty Manifest.
func NewManifest() *Manifest {
	return &Manifest{candidates: make(map[string][]Package)}
}

// Add appends a candidate under its name, preserving call order. Callers
// building a Manifest from a raw table should call Add in the table's
// original order.
func (m *Manifest) Add(p Package) {
	if _, ok := m.candidates[p.Name]; !ok {
		m.names = append(m.names, p.Name)
	}
	m.candidates[p.Name] = append(m.candidates[p.Name], p)
}

// Candidates returns the ordered candidate list for name (a copy; callers
// must not mutate the Manifest through it).
func (m *Manifest) Candidates(name string) []Package {
	src := m.candidates[name]
	out := make([]Package, len(src))
	copy(out, src)
	return out
}

// Names returns the package names present in the manifest, in first-seen
// order.
func (m *Manifest) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// MergeManifests combines an ordered list of manifest tables (each
// already a *Manifest), concatenating their per-name candidate lists and
// preserving each manifest's insertion order, earlier manifests first. A
// candidate with the same (name, version) as one already present from an
// earlier table is silently dropped — the earlier table wins.
func MergeManifests(tables ...*Manifest) *Manifest {
	merged := NewManifest()
	seen := make(map[string]map[string]struct{})
	for _, table := range tables {
		if table == nil {
			continue
		}
		for _, name := range table.Names() {
			if seen[name] == nil {
				seen[name] = make(map[string]struct{})
			}
			for _, pkg := range table.candidates[name] {
				key := pkg.Version.String()
				if _, dup := seen[name][key]; dup {
					continue
				}
				seen[name][key] = struct{}{}
				merged.Add(pkg)
			}
		}
	}
	return merged
}
