package pkgresolve

import "sort"

// Plan is the ordered list of Packages returned on success: each package
// appears after its unfulfilled dependencies, before its dependents.
type Plan []Package

// Tokens renders the plan as "name-version" tokens, in install order.
func (p Plan) Tokens() []string {
	out := make([]string, len(p))
	for i, pkg := range p {
		out[i] = pkg.Token()
	}
	return out
}

// Option configures a Resolve call.
type Option func(*resolveState)

// WithBinaryVerifier overrides the hash check used for binary candidates.
func WithBinaryVerifier(v BinaryVerifier) Option {
	return func(s *resolveState) { s.verifyBinary = v }
}

type resolveState struct {
	manifests    []*Manifest
	installed    map[string]Package
	tags         PlatformTags
	verifyBinary BinaryVerifier

	order  []Package
	placed map[string]struct{}
	path   []pathEntry
}

type pathEntry struct {
	name       string
	constraint Constraint
}

// Resolve computes the transitive install plan for request against the
// given ordered manifests and installed set, or returns a diagnostic
// error. manifests are consulted in the order given: index 0 is manifest
// rank 0, the highest priority.
func Resolve(request string, manifests []*Manifest, installed map[string]Package, tags PlatformTags, opts ...Option) (Plan, error) {
	c, err := ParseConstraint(request)
	if err != nil {
		return nil, err
	}
	return ResolveConstraint(c, manifests, installed, tags, opts...)
}

// ResolveConstraint is Resolve for an already-parsed Constraint.
func ResolveConstraint(request Constraint, manifests []*Manifest, installed map[string]Package, tags PlatformTags, opts ...Option) (Plan, error) {
	if tags == nil {
		tags = DefaultPlatformTags()
	}
	s := &resolveState{
		manifests:    manifests,
		installed:    installed,
		tags:         tags,
		verifyBinary: DefaultBinaryVerifier,
		placed:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.resolveOne(request); err != nil {
		return nil, err
	}
	return Plan(s.order), nil
}

// resolveOne resolves a single constraint against cycle, placement,
// installed-set, and candidate-enumeration checks in turn.
func (s *resolveState) resolveOne(c Constraint) error {
	// 1. cycle check.
	for _, entry := range s.path {
		if entry.name == c.Name {
			return errCircular(s.pathNames(), c.Name)
		}
	}

	// 2. already placed.
	if _, ok := s.placed[c.Name]; ok {
		placedPkg := s.findPlaced(c.Name)
		if c.Satisfies(placedPkg.Version) {
			return nil
		}
		return errConflict(c.Name, placedPkg.Version.String(), c)
	}

	// 3. installed check.
	if pkg, ok := s.installed[c.Name]; ok {
		if c.Satisfies(pkg.Version) {
			return nil
		}
		wanted := c.Version.String()
		if c.Op == OpNone {
			wanted = "any"
		}
		return errInstalledMismatch(c.Name, wanted, pkg.Version.String())
	}

	// 4/5. candidate enumeration: newest-first within a manifest, manifest
	// rank dominates across manifests.
	candidates := s.enumerateCandidates(c)
	if len(candidates) == 0 {
		return errNoCandidate(c.Name)
	}

	// 6. try candidates in order.
	var lastErr error
	for _, candidate := range candidates {
		s.path = append(s.path, pathEntry{name: candidate.Name, constraint: c})
		snapshot := len(s.order)

		ok, err := s.tryCandidate(candidate)
		if ok {
			s.order = append(s.order, candidate)
			s.placed[candidate.Name] = struct{}{}
			s.path = s.path[:len(s.path)-1]
			return nil
		}
		lastErr = err
		s.undo(snapshot)
		s.path = s.path[:len(s.path)-1]
	}

	if lastErr != nil {
		return lastErr
	}
	return errNoCandidate(c.Name)
}

// tryCandidate resolves candidate's dependencies and, for binary
// candidates, validates the dependency-closure hash.
func (s *resolveState) tryCandidate(candidate Package) (bool, error) {
	for _, dep := range candidate.DepsFor(s.tags) {
		if err := s.resolveOne(dep); err != nil {
			return false, err
		}
	}

	if candidate.IsBinary() {
		resolved := s.resolvedDepsFor(candidate)
		if !s.verifyBinary(candidate, resolved) {
			return false, errBinaryHashMismatch(candidate.Name, candidate.Version.String())
		}
	}

	return true, nil
}

// resolvedDepsFor collects the placed Packages of candidate's transitive
// dependency closure, skipping names that were satisfied by the installed
// set (those contribute no Package to the plan and are not descended into).
func (s *resolveState) resolvedDepsFor(candidate Package) []Package {
	var out []Package
	seen := make(map[string]bool)
	queue := candidate.DepsFor(s.tags)
	for len(queue) > 0 {
		dep := queue[0]
		queue = queue[1:]
		if seen[dep.Name] {
			continue
		}
		seen[dep.Name] = true
		if pkg := s.findPlaced(dep.Name); pkg != nil {
			out = append(out, *pkg)
			queue = append(queue, pkg.DepsFor(s.tags)...)
		}
	}
	return out
}

// undo restores order/placed to their state before a failed candidate
// attempt.
func (s *resolveState) undo(snapshot int) {
	for _, pkg := range s.order[snapshot:] {
		delete(s.placed, pkg.Name)
	}
	s.order = s.order[:snapshot]
}

func (s *resolveState) findPlaced(name string) *Package {
	for i := range s.order {
		if s.order[i].Name == name {
			return &s.order[i]
		}
	}
	return nil
}

func (s *resolveState) pathNames() []string {
	out := make([]string, len(s.path))
	for i, e := range s.path {
		out[i] = e.name
	}
	return out
}

// enumerateCandidates gathers, filters, and orders the candidate pool for c.
func (s *resolveState) enumerateCandidates(c Constraint) []Package {
	var pool []Package
	for rank, manifest := range s.manifests {
		var fromManifest []Package
		for _, cand := range manifest.Candidates(c.Name) {
			if !cand.Supports(s.tags) {
				continue
			}
			if !c.Satisfies(cand.Version) {
				continue
			}
			cand.ManifestRank = rank
			fromManifest = append(fromManifest, cand)
		}
		sort.SliceStable(fromManifest, func(i, j int) bool {
			return fromManifest[i].Version.Compare(fromManifest[j].Version) > 0
		})
		pool = append(pool, fromManifest...)
	}
	return pool
}
