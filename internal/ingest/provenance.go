package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/pkgforge/pkgresolve/internal/telemetry"
)

// VerifySignature checks document against its detached PGP signature
// using the given armored or binary public keyring, accepting either
// armored or binary signature encoding. A manifest that fails this check
// must never be handed to BuildManifest.
func VerifySignature(document, signature, keyring []byte) error {
	log := telemetry.Logger()

	entities, err := readKeyring(keyring)
	if err != nil {
		return fmt.Errorf("parsing manifest signing key: %w", err)
	}

	_, err = openpgp.CheckArmoredDetachedSignature(entities, bytes.NewReader(document), bytes.NewReader(signature), &packet.Config{})
	if err == nil {
		return nil
	}
	log.Debugf("armored signature check failed, retrying as binary: %v", err)

	_, err = openpgp.CheckDetachedSignature(entities, bytes.NewReader(document), bytes.NewReader(signature), &packet.Config{})
	if err != nil {
		return fmt.Errorf("manifest signature verification failed: %w", err)
	}
	return nil
}

func readKeyring(keyring []byte) (openpgp.EntityList, error) {
	if strings.Contains(string(keyring), "-----BEGIN PGP PUBLIC KEY BLOCK-----") {
		return openpgp.ReadArmoredKeyRing(bytes.NewReader(keyring))
	}
	return openpgp.ReadKeyRing(bytes.NewReader(keyring))
}
