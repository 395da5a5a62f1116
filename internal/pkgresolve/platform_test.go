package pkgresolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
)

func TestPlatformSpecMatches(t *testing.T) {
	testCases := []struct {
		name     string
		spec     pkgresolve.PlatformSpec
		required pkgresolve.PlatformTags
		want     bool
	}{
		{
			name:     "any platform always matches",
			spec:     pkgresolve.AnyPlatform,
			required: pkgresolve.NewPlatformTags("windows"),
			want:     true,
		},
		{
			name:     "positive tag present",
			spec:     pkgresolve.NewPlatformSpec("linux"),
			required: pkgresolve.DefaultPlatformTags(),
			want:     true,
		},
		{
			name:     "positive tag absent",
			spec:     pkgresolve.NewPlatformSpec("windows"),
			required: pkgresolve.DefaultPlatformTags(),
			want:     false,
		},
		{
			name:     "negated tag present rejects",
			spec:     pkgresolve.NewPlatformSpec("!linux"),
			required: pkgresolve.DefaultPlatformTags(),
			want:     false,
		},
		{
			name:     "negated tag absent accepts",
			spec:     pkgresolve.NewPlatformSpec("!windows"),
			required: pkgresolve.DefaultPlatformTags(),
			want:     true,
		},
		{
			name:     "mixed positive and negative, negation wins",
			spec:     pkgresolve.NewPlatformSpec("unix", "!linux"),
			required: pkgresolve.DefaultPlatformTags(),
			want:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.spec.Matches(tc.required))
		})
	}
}

func TestPlatformSpecIsAny(t *testing.T) {
	require.True(t, pkgresolve.AnyPlatform.IsAny())
	require.False(t, pkgresolve.NewPlatformSpec("linux").IsAny())
}

func TestDefaultPlatformTags(t *testing.T) {
	tags := pkgresolve.DefaultPlatformTags()
	require.True(t, tags.Has("unix"))
	require.True(t, tags.Has("linux"))
	require.False(t, tags.Has("windows"))
}
