package ingest

import (
	"fmt"
	"io"

	"github.com/sassoftware/go-rpmutils"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
)

// PackageFromRPM reads one RPM's header and turns its NEVRA and
// Requires: tags into a pkgresolve.Package, the same header fields the
// DNF/YUM-style resolver in this corpus walks when building its candidate
// pool from a repository's package files.
func PackageFromRPM(r io.Reader) (pkgresolve.Package, error) {
	header, err := rpmutils.ReadHeader(r)
	if err != nil {
		return pkgresolve.Package{}, fmt.Errorf("reading rpm header: %w", err)
	}

	nevra, err := header.GetNEVRA()
	if err != nil {
		return pkgresolve.Package{}, fmt.Errorf("reading rpm NEVRA: %w", err)
	}

	versionStr := nevra.Version
	if nevra.Release != "" {
		versionStr = fmt.Sprintf("%s-%s", nevra.Version, nevra.Release)
	}
	version, err := pkgresolve.ParseVersion(versionStr)
	if err != nil {
		return pkgresolve.Package{}, fmt.Errorf("parsing rpm version %q: %w", versionStr, err)
	}

	deps, err := requiresToConstraints(header)
	if err != nil {
		return pkgresolve.Package{}, err
	}

	return pkgresolve.Package{
		Name:    nevra.Name,
		Version: version,
		Deps:    pkgresolve.DependencyList{Positional: deps},
	}, nil
}

func requiresToConstraints(header *rpmutils.RpmHeader) ([]pkgresolve.Constraint, error) {
	names, err := header.GetStrings(rpmutils.REQUIRENAME)
	if err != nil {
		// RPMs with no Requires: tag are common; treat as no dependencies.
		return nil, nil
	}
	versions, _ := header.GetStrings(rpmutils.REQUIREVERSION)

	out := make([]pkgresolve.Constraint, 0, len(names))
	for i, name := range names {
		if name == "" || isRPMInternalDep(name) {
			continue
		}
		text := name
		if i < len(versions) && versions[i] != "" {
			text = fmt.Sprintf("%s == %s", name, versions[i])
		}
		c, err := pkgresolve.ParseConstraint(text)
		if err != nil {
			return nil, fmt.Errorf("parsing rpm requires %q: %w", text, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// isRPMInternalDep filters rpmlib(...) capability dependencies, which are
// not resolvable package names. Other synthetic capabilities (file paths,
// config(...) and the like) are not filtered.
func isRPMInternalDep(name string) bool {
	return len(name) > 7 && name[:7] == "rpmlib("
}
