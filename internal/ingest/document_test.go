package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkgforge/pkgresolve/internal/ingest"
)

const sampleManifest = `
packages:
  - name: a
    version: "2.0-0"
    requires:
      - "b~>1.0"
    platforms: ["!windows"]
  - name: b
    version: "1.5-0"
    platform_requires:
      linux:
        - "c>=1.0"
  - name: c
    version: "1.0-0"
`

func TestParseDocumentValid(t *testing.T) {
	doc, err := ingest.ParseDocument([]byte(sampleManifest))
	require.NoError(t, err)
	require.Len(t, doc.Packages, 3)
	require.Equal(t, "a", doc.Packages[0].Name)
	require.Equal(t, []string{"b~>1.0"}, doc.Packages[0].Requires)
}

func TestParseDocumentRejectsUnknownField(t *testing.T) {
	_, err := ingest.ParseDocument([]byte(`
packages:
  - name: a
    version: "1.0-0"
    bogus_field: true
`))
	require.Error(t, err)
}

func TestParseDocumentRejectsMissingVersion(t *testing.T) {
	_, err := ingest.ParseDocument([]byte(`
packages:
  - name: a
`))
	require.Error(t, err)
}

func TestBuildManifestPreservesOrderAndParsesConstraints(t *testing.T) {
	doc, err := ingest.ParseDocument([]byte(sampleManifest))
	require.NoError(t, err)

	manifest, err := ingest.BuildManifest(doc)
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b", "c"}, manifest.Names())

	aCandidates := manifest.Candidates("a")
	require.Len(t, aCandidates, 1)
	require.Equal(t, "2.0-0", aCandidates[0].Version.String())
	require.Len(t, aCandidates[0].Deps.Positional, 1)
	require.True(t, aCandidates[0].Platforms.Matches(map[string]struct{}{}))
}

func TestBuildManifestInvalidVersionFails(t *testing.T) {
	doc := &ingest.Document{
		Packages: []ingest.RawPackage{{Name: "x", Version: ""}},
	}
	_, err := ingest.BuildManifest(doc)
	require.Error(t, err)
}
