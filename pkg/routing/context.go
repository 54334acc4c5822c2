package routing

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithDecision stores the routing decision in the context.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}

// DecisionFromContext returns the decision made for the current request.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(contextKey{}).(Decision)
	return d, ok
}

// ScopeKey returns the session scope key for a decision: "admin" for admin
// scope, the canonical subdomain for tenant scope, "" otherwise.
func (d Decision) ScopeKey() string {
	switch d.Kind {
	case KindAdmin:
		return AdminScopeKey
	case KindTenant:
		return d.TenantID
	default:
		return ""
	}
}

// AdminScopeKey is the scope key of the admin surface.
const AdminScopeKey = "admin"

// LoggerExtractor returns a ContextExtractor for the logger that adds the routing scope.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		d, ok := DecisionFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		if key := d.ScopeKey(); key != "" {
			return slog.String("scope", key), true
		}
		return slog.Attr{}, false
	}
}
