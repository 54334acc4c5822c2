package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/account"
	"github.com/dmitrymomot/tenantgate/pkg/binder"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

// Service serves tenant administration and routing diagnostics.
type Service struct {
	tenants      tenant.Repository
	users        account.Repository
	sessions     *session.Manager
	router       *routing.Router
	baseDomain   string
	devHost      string
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithURLs sets the production base domain and the development host used
// to build tenant URLs in diagnostics.
func WithURLs(baseDomain, devHost string) Option {
	return func(s *Service) {
		if baseDomain != "" {
			s.baseDomain = baseDomain
		}
		if devHost != "" {
			s.devHost = devHost
		}
	}
}

// New creates the admin service. The router is used for environment
// detection and alias resolution in diagnostics.
func New(tenants tenant.Repository, users account.Repository, sessions *session.Manager, router *routing.Router, opts ...Option) *Service {
	cfg := routing.DefaultConfig()
	s := &Service{
		tenants:    tenants,
		users:      users,
		sessions:   sessions,
		router:     router,
		baseDomain: cfg.BaseDomain,
		devHost:    cfg.DevHost,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errorHandler = handler.NewErrorHandler(s.logger)
	return s
}

// TenantRoutes returns the handler mounted at /api/admin/tenants. Every
// route requires a SUPER_ADMIN session in the admin scope.
func (s *Service) TenantRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.sessions.Require(session.FixedScope(session.AdminScope())))

	r.Get("/", handler.Wrap(s.listTenants,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/", handler.Wrap(s.createTenant,
		handler.WithBinders[handler.Context, tenant.CreateInput](binder.JSON()),
		handler.WithErrorHandler[handler.Context, tenant.CreateInput](s.errorHandler),
	))

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.Wrap(s.getTenant,
			handler.WithBinders[handler.Context, tenantRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, tenantRequest](s.errorHandler),
		))
		update := handler.Wrap(s.updateTenant,
			handler.WithBinders[handler.Context, updateRequest](
				binder.Path(chi.URLParam),
				binder.JSON(),
			),
			handler.WithErrorHandler[handler.Context, updateRequest](s.errorHandler),
		)
		r.Patch("/", update)
		r.Put("/", update)
		r.Delete("/", handler.Wrap(s.deleteTenant,
			handler.WithBinders[handler.Context, tenantRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, tenantRequest](s.errorHandler),
		))
	})
	return r
}

// DebugRoutes returns the handler mounted at /api/debug.
func (s *Service) DebugRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/tenants", handler.Wrap(s.debugTenants,
		handler.WithBinders[handler.Context, debugRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, debugRequest](s.errorHandler),
	))
	return r
}
