package pkgresolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
)

func mustPackage(t *testing.T, name, version string) pkgresolve.Package {
	t.Helper()
	v, err := pkgresolve.ParseVersion(version)
	require.NoError(t, err)
	return pkgresolve.Package{Name: name, Version: v}
}

func TestManifestAddPreservesInsertionOrder(t *testing.T) {
	m := pkgresolve.NewManifest()
	m.Add(mustPackage(t, "a", "2.0"))
	m.Add(mustPackage(t, "a", "1.0"))
	m.Add(mustPackage(t, "b", "1.0"))

	require.Equal(t, []string{"a", "b"}, m.Names())

	cands := m.Candidates("a")
	require.Len(t, cands, 2)
	require.Equal(t, "2.0-0", cands[0].Version.String())
	require.Equal(t, "1.0-0", cands[1].Version.String())
}

func TestManifestCandidatesReturnsCopy(t *testing.T) {
	m := pkgresolve.NewManifest()
	m.Add(mustPackage(t, "a", "1.0"))

	cands := m.Candidates("a")
	cands[0].Name = "mutated"

	require.Equal(t, "a", m.Candidates("a")[0].Name)
}

func TestMergeManifestsEarlierWins(t *testing.T) {
	high := pkgresolve.NewManifest()
	high.Add(mustPackage(t, "a", "1.0"))

	low := pkgresolve.NewManifest()
	low.Add(mustPackage(t, "a", "1.0"))
	low.Add(mustPackage(t, "a", "2.0"))
	low.Add(mustPackage(t, "b", "1.0"))

	merged := pkgresolve.MergeManifests(high, low)

	require.Equal(t, []string{"a", "b"}, merged.Names())
	cands := merged.Candidates("a")
	require.Len(t, cands, 2, "duplicate (a, 1.0) from the lower-priority table should be dropped")
	require.Equal(t, "1.0-0", cands[0].Version.String())
	require.Equal(t, "2.0-0", cands[1].Version.String())
}

func TestMergeManifestsSkipsNil(t *testing.T) {
	m := pkgresolve.NewManifest()
	m.Add(mustPackage(t, "a", "1.0"))

	merged := pkgresolve.MergeManifests(nil, m, nil)
	require.Equal(t, []string{"a"}, merged.Names())
}
