package session

import "context"

// Store persists sessions keyed by (scope key, token). A token is only
// found under the scope key it was created with.
type Store interface {
	// Create stores a new session under s.ScopeKey.
	Create(ctx context.Context, s *Session) error

	// Get returns ErrSessionNotFound for unknown and expired tokens.
	Get(ctx context.Context, scopeKey, token string) (*Session, error)

	// Delete removes one session. Deleting a missing session is not an error.
	Delete(ctx context.Context, scopeKey, token string) error

	// DeleteScope removes every session of a scope.
	DeleteScope(ctx context.Context, scopeKey string) error

	// DeleteExpired removes sessions past their expiry.
	DeleteExpired(ctx context.Context) error
}
