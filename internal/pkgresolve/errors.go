package pkgresolve

import (
	"fmt"
	"strings"
)

// errCircular builds the cycle diagnostic. path is the DFS stack of names;
// the message appends the repeated name to close the cycle.
func errCircular(path []string, repeated string) error {
	return fmt.Errorf("circular dependency detected: %s -> %s", strings.Join(path, " -> "), repeated)
}

// errNoCandidate builds the "no suitable candidate" diagnostic.
func errNoCandidate(name string) error {
	return fmt.Errorf("No suitable candidate for package %q found", name)
}

// errInstalledMismatch builds the "but installed at version" diagnostic.
func errInstalledMismatch(name, wanted, installed string) error {
	return fmt.Errorf("Package %s is required at version %s but installed at version %s", name, wanted, installed)
}

// errBinaryHashMismatch reports that a binary candidate's dependency
// closure does not match its "_HEX" suffix; the resolver treats this as a
// rejected candidate, not a terminal error.
func errBinaryHashMismatch(name, version string) error {
	return fmt.Errorf("binary package %s-%s dependency-closure hash mismatch", name, version)
}

// errConflict builds the diagnostic for a name requested twice with
// incompatible constraints after placement.
func errConflict(name string, placedVersion string, c Constraint) error {
	return fmt.Errorf("conflict: package %s already placed at version %s, which does not satisfy %s", name, placedVersion, c.String())
}
