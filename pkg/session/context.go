package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/tenantgate/pkg/logger"
)

type sessionContextKey struct{}

// WithSession adds a session to the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext retrieves a session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}

// PrincipalFromContext returns the principal of the session in the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return Principal{}, false
	}
	return s.Principal, true
}

// LoggerExtractor returns a ContextExtractor for the logger that adds the user ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		p, ok := PrincipalFromContext(ctx)
		if !ok || p.ID == "" {
			return slog.Attr{}, false
		}
		return logger.UserID(p.ID), true
	}
}
