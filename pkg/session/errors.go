package session

import "errors"

var (
	// ErrSessionNotFound covers every "no session" outcome: missing cookie,
	// unknown or expired token, and a token presented under the wrong scope key.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidScope indicates a scope key that is not a valid identifier.
	ErrInvalidScope = errors.New("session.invalid_scope")

	// ErrScopeDenied is returned by Create when the principal may not hold
	// a session in the scope: a non super admin on the admin surface, or a
	// user of another tenant.
	ErrScopeDenied = errors.New("session.scope_denied")

	// ErrInvalidSession indicates a session record that cannot be stored.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrStoreUnavailable wraps storage failures.
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrTokenGeneration indicates the random source failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")
)
