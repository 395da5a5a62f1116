package pkgresolve

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// BinaryVerifier recomputes the expected hash for a binary candidate from
// its resolved dependency closure and reports whether it matches the
// candidate's "_HEX" suffix. The real hash function is treated as an
// opaque black box injected by the caller; DefaultBinaryVerifier is a
// deterministic fingerprint suitable for tests and local manifests.
type BinaryVerifier func(candidate Package, resolvedDeps []Package) bool

// DefaultBinaryVerifier hashes the sorted "name-version" tokens of
// resolvedDeps and compares the hex digest's prefix against the
// candidate's binary-hash suffix.
func DefaultBinaryVerifier(candidate Package, resolvedDeps []Package) bool {
	suffix, ok := candidate.Version.Hash()
	if !ok {
		return true // not a binary candidate; nothing to verify
	}
	return hashDepClosure(resolvedDeps) == suffix
}

func hashDepClosure(deps []Package) string {
	tokens := make([]string, len(deps))
	for i, d := range deps {
		tokens[i] = d.Token()
	}
	sort.Strings(tokens)
	sum := sha256.Sum256([]byte(strings.Join(tokens, "\n")))
	digest := hex.EncodeToString(sum[:])
	const hashLen = 10
	if len(digest) > hashLen {
		return digest[:hashLen]
	}
	return digest
}
