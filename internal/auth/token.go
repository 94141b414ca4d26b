package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenCodec signs and verifies bearer tokens. Tokens carry only the
// subject username plus issued-at and expiry timestamps; everything else
// about the identity is resolved per request from the account store.
type TokenCodec struct {
	key    SigningKey
	logger *zap.Logger
	now    func() time.Time
}

// NewTokenCodec builds a codec bound to the process signing key.
func NewTokenCodec(key SigningKey, logger *zap.Logger) *TokenCodec {
	return &TokenCodec{key: key, logger: logger, now: time.Now}
}

// Generate builds and signs a token for the subject with expiry now+ttl.
func (c *TokenCodec) Generate(subject string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenString, err := token.SignedString(c.key.Bytes())
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate reports whether the token's signature verifies and its expiry
// has not passed. Failure reasons are logged for diagnostics but
// deliberately collapsed to a boolean so callers cannot distinguish which
// check failed.
func (c *TokenCodec) Validate(tokenStr string) bool {
	parser := jwt.NewParser(jwt.WithTimeFunc(func() time.Time { return c.now() }))
	_, err := parser.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, ErrUnsupportedAlgorithm
		}
		return c.key.Bytes(), nil
	})
	if err == nil {
		return true
	}

	reason := classifyTokenError(err)
	if errors.Is(reason, ErrSignatureMismatch) {
		c.logger.Error("token rejected", zap.String("reason", reason.Error()))
	} else {
		c.logger.Warn("token rejected", zap.String("reason", reason.Error()))
	}
	return false
}

// Subject extracts the subject via structural decoding only; it succeeds
// on expired or tampered tokens. Callers must Validate first whenever a
// trust decision depends on the result.
func (c *TokenCodec) Subject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return "", ErrMalformedToken
	}
	if claims.Subject == "" {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}

// Refresh issues a new token with expiry now+refreshTTL, but only when
// the presented token still validates and was issued for expectedSubject.
// Anything else denies the refresh; a token must not be exchanged for an
// identity other than the one presenting it.
func (c *TokenCodec) Refresh(tokenStr, expectedSubject string, now time.Time, refreshTTL time.Duration) (string, time.Time, bool) {
	if !c.Validate(tokenStr) {
		return "", time.Time{}, false
	}
	subject, err := c.Subject(tokenStr)
	if err != nil || subject != expectedSubject {
		return "", time.Time{}, false
	}

	tokenString, expiresAt, err := c.Generate(expectedSubject, now, refreshTTL)
	if err != nil {
		return "", time.Time{}, false
	}
	return tokenString, expiresAt, true
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureMismatch
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return ErrUnsupportedAlgorithm
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformedToken
	default:
		return ErrMalformedToken
	}
}
