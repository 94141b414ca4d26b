package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// SigningKeySize is the HMAC-SHA-512 key length in bytes.
const SigningKeySize = 64

// SigningKey is the process-lifetime symmetric secret used to sign and
// verify tokens. It is immutable after creation and must never be logged
// or persisted in recoverable form; use Fingerprint for diagnostics.
type SigningKey struct {
	material []byte
}

// NewSigningKey generates a fresh random key. Tokens signed by a
// previous process do not survive a restart.
func NewSigningKey() (SigningKey, error) {
	material := make([]byte, SigningKeySize)
	if _, err := rand.Read(material); err != nil {
		return SigningKey{}, fmt.Errorf("generate signing key: %w", err)
	}
	return SigningKey{material: material}, nil
}

// SigningKeyFromBase64 builds a key from an operator-provided secret so
// multiple instances can verify each other's tokens. A key that does not
// decode or is shorter than SigningKeySize is a startup failure.
func SigningKeyFromBase64(encoded string) (SigningKey, error) {
	material, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return SigningKey{}, fmt.Errorf("decode signing key: %w", err)
	}
	if len(material) < SigningKeySize {
		return SigningKey{}, fmt.Errorf("signing key must be at least %d bytes, got %d", SigningKeySize, len(material))
	}
	return SigningKey{material: material}, nil
}

// Bytes exposes the raw key material to the token codec.
func (k SigningKey) Bytes() []byte {
	return k.material
}

// Fingerprint returns a short non-reversible identifier for the key,
// safe to include in startup logs.
func (k SigningKey) Fingerprint() string {
	sum := sha256.Sum256(k.material)
	return hex.EncodeToString(sum[:8])
}
