package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

// pages answers the non-api paths. Tenant pages arrive rewritten to
// /{subdomain}/{page} by the routing middleware. The UI is rendered
// elsewhere, so each page is described as JSON.
type pages struct {
	service      string
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

func newPages(service string, log *slog.Logger) *pages {
	return &pages{
		service:      service,
		logger:       log,
		errorHandler: handler.NewErrorHandler(log),
	}
}

type pageResponse struct {
	Scope       string                  `json:"scope"`
	Path        string                  `json:"path"`
	Page        string                  `json:"page,omitempty"`
	Service     string                  `json:"service"`
	Environment environment.Environment `json:"environment"`
	Tenant      *tenant.Tenant          `json:"tenant,omitempty"`
	User        *session.Principal      `json:"user"`
}

func (p *pages) handler() http.HandlerFunc {
	return handler.Wrap(p.serve,
		handler.WithErrorHandler[handler.Context, struct{}](p.errorHandler),
	)
}

func (p *pages) serve(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	if routing.IsAPIPath(r.URL.Path) {
		return handler.JSONError(handler.ErrNotFound)
	}

	d, _ := routing.DecisionFromContext(ctx)
	resp := pageResponse{
		Scope:       d.Kind.String(),
		Path:        r.URL.Path,
		Service:     p.service,
		Environment: environment.FromContext(ctx),
	}

	switch d.Kind {
	case routing.KindTenant:
		t := d.Tenant
		resp.Tenant = t
		resp.Page = strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/"+t.Subdomain), "/")
		if pr, ok := session.PrincipalFromContext(ctx); ok {
			resp.User = &pr
		}
		p.logger.DebugContext(ctx, "tenant page", logger.Tenant(t.Subdomain), slog.String("page", resp.Page))
	case routing.KindAdmin:
		if pr, ok := session.PrincipalFromContext(ctx); ok {
			resp.User = &pr
		}
	}
	return handler.JSON(resp)
}
