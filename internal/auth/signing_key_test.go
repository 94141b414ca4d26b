package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSigningKey(t *testing.T) {
	a, err := NewSigningKey()
	require.NoError(t, err)
	b, err := NewSigningKey()
	require.NoError(t, err)

	assert.Len(t, a.Bytes(), SigningKeySize)
	assert.NotEqual(t, a.Bytes(), b.Bytes())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestSigningKeyFromBase64(t *testing.T) {
	material := make([]byte, SigningKeySize)
	for i := range material {
		material[i] = byte(i)
	}
	encoded := base64.StdEncoding.EncodeToString(material)

	key, err := SigningKeyFromBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, material, key.Bytes())

	_, err = SigningKeyFromBase64("not base64 at all!!!")
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err = SigningKeyFromBase64(short)
	assert.Error(t, err)
}

func TestFingerprintDoesNotLeakKey(t *testing.T) {
	key, err := NewSigningKey()
	require.NoError(t, err)

	fingerprint := key.Fingerprint()
	assert.Len(t, fingerprint, 16)
	assert.NotContains(t, base64.StdEncoding.EncodeToString(key.Bytes()), fingerprint)
}
