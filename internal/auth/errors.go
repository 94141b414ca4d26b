package auth

import "errors"

// Failure taxonomy for token authentication. None of these abort request
// processing; they all reduce to "no principal set" for the request.
var (
	// ErrMalformedToken marks a token that fails structural decoding.
	ErrMalformedToken = errors.New("malformed token")

	// ErrExpiredToken marks a token whose signature verifies but whose
	// time window has elapsed.
	ErrExpiredToken = errors.New("token expired")

	// ErrSignatureMismatch marks a tampered token or one signed with a
	// different key.
	ErrSignatureMismatch = errors.New("token signature mismatch")

	// ErrUnsupportedAlgorithm marks a token signed with an algorithm
	// other than the pinned one.
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

	// ErrIdentityNotFound marks a valid token whose subject has no
	// matching account.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrAccountDisabled marks a resolved identity whose account status
	// forbids authentication.
	ErrAccountDisabled = errors.New("account disabled")
)
