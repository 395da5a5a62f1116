package pkgresolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
)

func mustVersion(t *testing.T, s string) pkgresolve.Version {
	t.Helper()
	v, err := pkgresolve.ParseVersion(s)
	require.NoErrorf(t, err, "ParseVersion(%q)", s)
	return v
}

func TestVersionStringRoundTrip(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1-0", "1-0"},
		{"1.0-0", "1.0-0"},
		{"2.0", "2.0-0"},
		{"v1.2.3", "1.2.3-0"},
		{"1.0-0_5d4546a90e", "1.0-0_5d4546a90e"},
	}
	for _, tc := range cases {
		v := mustVersion(t, tc.in)
		require.Equal(t, tc.want, v.String(), "input %q", tc.in)
	}
}

func TestVersionBinaryHashSuffix(t *testing.T) {
	v := mustVersion(t, "1.0-0_5d4546a90e")
	hash, ok := v.Hash()
	require.True(t, ok)
	require.Equal(t, "5d4546a90e", hash)
	require.True(t, v.IsBinary())

	src := mustVersion(t, "1.0-0")
	require.False(t, src.IsBinary())
}

func TestVersionEqualIgnoresHash(t *testing.T) {
	bin := mustVersion(t, "1.0-0_5d4546a90e")
	src := mustVersion(t, "1.0-0")
	require.True(t, bin.Equal(src), "binary-hash suffix must be opaque to equality")
}

func TestVersionTrailingZerosEqual(t *testing.T) {
	require.True(t, mustVersion(t, "1.0").Equal(mustVersion(t, "1.0.0")))
	require.True(t, mustVersion(t, "1.0.0").Equal(mustVersion(t, "1.0")))
}

func TestVersionPreReleaseOrdering(t *testing.T) {
	require.Equal(t, -1, mustVersion(t, "1.2alpha").Compare(mustVersion(t, "1.2")), "1.2alpha < 1.2")
	require.Equal(t, -1, mustVersion(t, "1.2").Compare(mustVersion(t, "1.2.1")), "1.2 < 1.2.1")

	ordered := []string{"1.2work", "1.2alpha", "1.2beta", "1.2pre", "1.2rc", "1.2"}
	for i := 0; i < len(ordered)-1; i++ {
		a := mustVersion(t, ordered[i])
		b := mustVersion(t, ordered[i+1])
		require.Negative(t, a.Compare(b), "%s should be < %s", ordered[i], ordered[i+1])
	}
}

func TestVersionRevisionComparedLast(t *testing.T) {
	require.Negative(t, mustVersion(t, "1.0-0").Compare(mustVersion(t, "1.0-1")))
	require.Equal(t, 0, mustVersion(t, "1.0-0").Compare(mustVersion(t, "1.0-0")))
}

func TestVersionNewestFirstOrdering(t *testing.T) {
	require.Positive(t, mustVersion(t, "2-0").Compare(mustVersion(t, "1-0")))
}

func TestVersionMixedAlphaNumericTokens(t *testing.T) {
	// Both "work" and "alpha" prefixes are recognized on mixed runs; per
	// the weight table "work" ranks below "alpha" regardless of the
	// trailing numeral attached to each tag.
	require.Negative(t, mustVersion(t, "1work2").Compare(mustVersion(t, "1alpha2")))
}

func TestVersionCompatibleOperatorExamples(t *testing.T) {
	bound := mustVersion(t, "1.0")
	for _, s := range []string{"1.0", "1.0.7", "1.9"} {
		c := pkgresolve.Constraint{Name: "x", Op: pkgresolve.OpCompat, Version: bound}
		require.True(t, c.Satisfies(mustVersion(t, s)), "~> 1.0 should match %s", s)
	}
	c := pkgresolve.Constraint{Name: "x", Op: pkgresolve.OpCompat, Version: bound}
	require.False(t, c.Satisfies(mustVersion(t, "2.0")), "~> 1.0 should not match 2.0")

	bound2 := mustVersion(t, "5.2")
	c2 := pkgresolve.Constraint{Name: "x", Op: pkgresolve.OpCompat, Version: bound2}
	require.True(t, c2.Satisfies(mustVersion(t, "5.2.4")))
	require.False(t, c2.Satisfies(mustVersion(t, "5.1.0")))
}
