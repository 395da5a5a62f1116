package fetchsim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkgforge/pkgresolve/internal/fetchsim"
)

func writeBlob(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVerifyChecksumsAllMatch(t *testing.T) {
	dir := t.TempDir()
	good := writeBlob(t, dir, "good.bin", "hello world")
	empty := writeBlob(t, dir, "empty.bin", "")

	blobs := []fetchsim.Blob{
		{Path: good, ExpectedSHA256Hex: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		{Path: empty, ExpectedSHA256Hex: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}

	results := fetchsim.VerifyChecksums(blobs, 2)
	require.Len(t, results, 2)
	for i, r := range results {
		require.Truef(t, r.OK, "blob %d: %v", i, r.Error)
		require.NoError(t, r.Error)
	}
}

func TestVerifyChecksumsMismatchReported(t *testing.T) {
	dir := t.TempDir()
	bad := writeBlob(t, dir, "bad.bin", "tampered content")

	results := fetchsim.VerifyChecksums([]fetchsim.Blob{
		{Path: bad, ExpectedSHA256Hex: "0000000000000000000000000000000000000000000000000000000000000"},
	}, 1)

	require.Len(t, results, 1)
	require.False(t, results[0].OK)
	require.Error(t, results[0].Error)
}

func TestVerifyChecksumsMissingFile(t *testing.T) {
	results := fetchsim.VerifyChecksums([]fetchsim.Blob{
		{Path: filepath.Join(t.TempDir(), "does-not-exist.bin"), ExpectedSHA256Hex: "deadbeef"},
	}, 1)

	require.Len(t, results, 1)
	require.False(t, results[0].OK)
	require.Error(t, results[0].Error)
}

func TestVerifyChecksumsZeroWorkersClampsToOne(t *testing.T) {
	dir := t.TempDir()
	good := writeBlob(t, dir, "good.bin", "hello world")

	results := fetchsim.VerifyChecksums([]fetchsim.Blob{
		{Path: good, ExpectedSHA256Hex: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
	}, 0)

	require.Len(t, results, 1)
	require.True(t, results[0].OK)
}
