package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestCodec(t *testing.T) (*TokenCodec, *fakeClock) {
	t.Helper()

	key, err := NewSigningKey()
	require.NoError(t, err)

	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	codec := NewTokenCodec(key, zap.NewNop())
	codec.now = clock.Now
	return codec, clock
}

func TestTokenLifecycle(t *testing.T) {
	codec, clock := newTestCodec(t)

	token, expiresAt, err := codec.Generate("alice", clock.Now(), 900*time.Second)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(900*time.Second), expiresAt)

	assert.True(t, codec.Validate(token), "fresh token must validate")

	clock.Advance(899 * time.Second)
	assert.True(t, codec.Validate(token), "token must validate inside its window")

	clock.Advance(2 * time.Second)
	assert.False(t, codec.Validate(token), "token must fail once the window elapsed")

	// Structural decode still succeeds after expiry.
	subject, err := codec.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestValidateTamperedToken(t *testing.T) {
	codec, clock := newTestCodec(t)

	token, _, err := codec.Generate("alice", clock.Now(), time.Hour)
	require.NoError(t, err)

	tamper := func(s string, index int) string {
		b := []byte(s)
		if b[index] == 'A' {
			b[index] = 'B'
		} else {
			b[index] = 'A'
		}
		return string(b)
	}

	// Flip a byte in the payload segment.
	payloadOffset := len(token) / 2
	assert.False(t, codec.Validate(tamper(token, payloadOffset)))

	// Flip a byte in the signature segment.
	assert.False(t, codec.Validate(tamper(token, len(token)-2)))
}

func TestValidateForeignKey(t *testing.T) {
	codecA, clock := newTestCodec(t)
	codecB, _ := newTestCodec(t)

	token, _, err := codecA.Generate("alice", clock.Now(), time.Hour)
	require.NoError(t, err)

	assert.True(t, codecA.Validate(token))
	assert.False(t, codecB.Validate(token), "token signed with a different key must not verify")
}

func TestValidateUnsupportedAlgorithm(t *testing.T) {
	codec, clock := newTestCodec(t)

	claims := &jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(clock.Now()),
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}
	weaker, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.key.Bytes())
	require.NoError(t, err)

	assert.False(t, codec.Validate(weaker))
}

func TestSubjectMalformed(t *testing.T) {
	codec, clock := newTestCodec(t)

	_, err := codec.Subject("not-a-token")
	assert.ErrorIs(t, err, ErrMalformedToken)

	// A token without a subject is structurally unusable.
	empty, _, err := codec.Generate("", clock.Now(), time.Hour)
	require.NoError(t, err)
	_, err = codec.Subject(empty)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestRefresh(t *testing.T) {
	codec, clock := newTestCodec(t)

	token, _, err := codec.Generate("alice", clock.Now(), 900*time.Second)
	require.NoError(t, err)

	t.Run("matching subject extends expiry", func(t *testing.T) {
		refreshed, expiresAt, ok := codec.Refresh(token, "alice", clock.Now(), 2*time.Hour)
		require.True(t, ok)
		assert.Equal(t, clock.Now().Add(2*time.Hour), expiresAt)
		assert.True(t, codec.Validate(refreshed))

		subject, err := codec.Subject(refreshed)
		require.NoError(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("subject mismatch is denied even for a valid token", func(t *testing.T) {
		_, _, ok := codec.Refresh(token, "mallory", clock.Now(), 2*time.Hour)
		assert.False(t, ok)
	})

	t.Run("expired token is denied", func(t *testing.T) {
		clock.Advance(901 * time.Second)
		_, _, ok := codec.Refresh(token, "alice", clock.Now(), 2*time.Hour)
		assert.False(t, ok)
	})

	t.Run("garbage token is denied", func(t *testing.T) {
		_, _, ok := codec.Refresh("garbage", "alice", clock.Now(), 2*time.Hour)
		assert.False(t, ok)
	})
}
