package pkgresolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
)

func mustConstraint(t *testing.T, s string) pkgresolve.Constraint {
	t.Helper()
	c, err := pkgresolve.ParseConstraint(s)
	require.NoError(t, err)
	return c
}

func TestDependencyListDepsForPlatformOverride(t *testing.T) {
	deps := pkgresolve.DependencyList{
		Positional: []pkgresolve.Constraint{mustConstraint(t, "base")},
		PlatformOverrides: map[string][]pkgresolve.Constraint{
			"linux": {mustConstraint(t, "linux-only")},
		},
	}

	withLinux := deps.DepsFor(pkgresolve.NewPlatformTags("linux"))
	require.Len(t, withLinux, 2)

	withoutLinux := deps.DepsFor(pkgresolve.NewPlatformTags("windows"))
	require.Len(t, withoutLinux, 1)
	require.Equal(t, "base", withoutLinux[0].Name)
}

func TestPackageToken(t *testing.T) {
	v, err := pkgresolve.ParseVersion("1.0-0")
	require.NoError(t, err)
	pkg := pkgresolve.Package{Name: "a", Version: v}
	require.Equal(t, "a-1.0-0", pkg.Token())
}

func TestPackageIsBinary(t *testing.T) {
	src, err := pkgresolve.ParseVersion("1.0-0")
	require.NoError(t, err)
	bin, err := pkgresolve.ParseVersion("1.0-0_5d4546a90e")
	require.NoError(t, err)

	require.False(t, pkgresolve.Package{Version: src}.IsBinary())
	require.True(t, pkgresolve.Package{Version: bin}.IsBinary())
}

func TestPackageSupports(t *testing.T) {
	v, err := pkgresolve.ParseVersion("1.0-0")
	require.NoError(t, err)
	pkg := pkgresolve.Package{Name: "a", Version: v, Platforms: pkgresolve.NewPlatformSpec("!linux")}
	require.False(t, pkg.Supports(pkgresolve.DefaultPlatformTags()))
	require.True(t, pkg.Supports(pkgresolve.NewPlatformTags("windows")))
}
