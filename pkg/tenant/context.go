package tenant

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithTenant stores the resolved tenant in ctx. The routing middleware calls
// it for tenant-scoped requests only, so handlers on the admin and public
// surfaces never see one.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the tenant stored by WithTenant. A nil tenant counts
// as absent.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, _ := ctx.Value(ctxKey{}).(*Tenant)
	return t, t != nil
}

// MustFromContext is FromContext for handlers mounted under a tenant route.
// It panics when the middleware did not run.
func MustFromContext(ctx context.Context) *Tenant {
	if t, ok := FromContext(ctx); ok {
		return t
	}
	panic("tenant: no tenant in context")
}

// LoggerExtractor adds the canonical subdomain as "tenant".
func LoggerExtractor() func(context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		t, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("tenant", t.Subdomain), true
	}
}
