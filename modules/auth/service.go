package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/account"
	"github.com/dmitrymomot/tenantgate/pkg/binder"
	"github.com/dmitrymomot/tenantgate/pkg/ratelimiter"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
	"github.com/dmitrymomot/tenantgate/pkg/session"
)

// Error responses of the auth endpoints.
var (
	ErrInvalidCredentials = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	ErrAdminOnly          = handler.NewHTTPError(http.StatusForbidden, "admin_only")
	ErrTenantRequired     = handler.NewHTTPError(http.StatusNotFound, "tenant_not_found")
)

// Service serves login, logout and session endpoints for the tenant and
// admin scopes.
type Service struct {
	sessions      *session.Manager
	authenticator *account.Authenticator
	users         account.Repository
	limiter       *ratelimiter.Bucket
	logger        *slog.Logger
	errorHandler  handler.ErrorHandler[handler.Context]
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

// WithLoginLimiter throttles login attempts per scope and client address.
func WithLoginLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Service) {
		s.limiter = b
	}
}

// New creates the auth service.
func New(sessions *session.Manager, users account.Repository, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		users:    users,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.authenticator = account.NewAuthenticator(users, account.WithAuthLogger(s.logger))
	s.errorHandler = handler.NewErrorHandler(s.logger)
	return s
}

// TenantRoutes returns the handler mounted at /api/{tenant}/auth. It expects
// the routing middleware to have resolved the tenant.
func (s *Service) TenantRoutes() http.Handler {
	r := chi.NewRouter()
	r.With(s.throttle()...).Post("/login", handler.Wrap(s.tenantLogin,
		handler.WithBinders[handler.Context, LoginRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
	))
	r.Post("/logout", handler.Wrap(s.tenantLogout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/session", handler.Wrap(s.tenantSession,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/tenant-info", handler.Wrap(s.tenantDetails,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	return r
}

// AdminRoutes returns the handler mounted at /api/admin/auth.
func (s *Service) AdminRoutes() http.Handler {
	r := chi.NewRouter()
	r.With(s.throttle()...).Post("/login", handler.Wrap(s.adminLogin,
		handler.WithBinders[handler.Context, LoginRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
	))
	r.Post("/logout", handler.Wrap(s.adminLogout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/session", handler.Wrap(s.adminSession,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	return r
}

func (s *Service) throttle() []func(http.Handler) http.Handler {
	if s.limiter == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{
		ratelimiter.Middleware(s.limiter, ratelimiter.Composite(scopeKey, ratelimiter.ByIP()), s.logger),
	}
}

func scopeKey(r *http.Request) string {
	d, _ := routing.DecisionFromContext(r.Context())
	return d.ScopeKey()
}

// LoginRequest is the JSON body of both login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports missing fields.
func (req LoginRequest) Validate() error {
	verr := handler.NewValidationError()
	if strings.TrimSpace(req.Email) == "" {
		verr.Add("email", "email is required")
	}
	if req.Password == "" {
		verr.Add("password", "password is required")
	}
	if verr.IsEmpty() {
		return nil
	}
	return verr
}

// sessionResponse is returned by the session endpoints. User is null when
// the caller has no valid session.
type sessionResponse struct {
	User   *session.Principal `json:"user"`
	Tenant *tenantInfo        `json:"tenant,omitempty"`
}
