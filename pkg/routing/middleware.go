package routing

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

type middlewareConfig struct {
	notFound    func(w http.ResponseWriter, r *http.Request, d Decision)
	unavailable func(w http.ResponseWriter, r *http.Request, d Decision)
	retryDelay  time.Duration
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithNotFoundHandler replaces the default tenant-not-found response.
func WithNotFoundHandler(h func(w http.ResponseWriter, r *http.Request, d Decision)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.notFound = h
		}
	}
}

// WithUnavailableHandler replaces the default 503 response.
func WithUnavailableHandler(h func(w http.ResponseWriter, r *http.Request, d Decision)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.unavailable = h
		}
	}
}

// WithRetryDelay sets the delay before the not-found page retries an alias URL.
// Zero disables the retry.
func WithRetryDelay(d time.Duration) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.retryDelay = d
	}
}

// Middleware routes every request and acts on the decision:
//
//   - public and admin requests pass through unchanged
//   - tenant requests pass through with the tenant in the context and, unless
//     they are api requests, the URL path rewritten to the canonical tenant route
//   - redirects answer 307 to Location, keeping the query string
//   - not found renders the diagnostics page, or a JSON error under /api/
//   - unavailable answers 503
//
// The decision is always stored in the request context.
func (rt *Router) Middleware(opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		retryDelay: DefaultRetryDelay,
	}
	cfg.notFound = cfg.defaultNotFound
	cfg.unavailable = defaultUnavailable
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := rt.Route(r.Context(), r.Host, r.URL.Path)
			ctx := WithDecision(r.Context(), d)

			switch d.Kind {
			case KindRedirect:
				u := *r.URL
				u.Path, u.RawPath = d.Location, ""
				http.Redirect(w, r, u.RequestURI(), http.StatusTemporaryRedirect)
			case KindNotFound:
				cfg.notFound(w, r.WithContext(ctx), d)
			case KindUnavailable:
				cfg.unavailable(w, r.WithContext(ctx), d)
			case KindTenant:
				ctx = tenant.WithTenant(ctx, d.Tenant)
				r = r.WithContext(ctx)
				if d.Rewritten() {
					u := *r.URL
					u.Path, u.RawPath = d.InternalPath, ""
					r.URL = &u
				}
				next.ServeHTTP(w, r)
			default:
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

// IsAPIPath reports whether path belongs to the JSON API surface.
func IsAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

func (c *middlewareConfig) defaultNotFound(w http.ResponseWriter, r *http.Request, d Decision) {
	if IsAPIPath(d.Path) {
		_ = handler.JSON(handler.JSONResponse{
			Error: &handler.ErrorDetail{
				Code:    "tenant_not_found",
				Message: d.Reason,
			},
			Meta: map[string]any{"diagnostics": d.Diagnostics},
		}, handler.WithJSONStatus(http.StatusNotFound)).Render(w, r)
		return
	}
	page := NotFoundPage(d, queryOf(r.URL), c.retryDelay)
	_ = handler.TemplWithStatus(page, http.StatusNotFound).Render(w, r)
}

func defaultUnavailable(w http.ResponseWriter, r *http.Request, d Decision) {
	if IsAPIPath(d.Path) {
		_ = handler.JSONError(handler.ErrServiceUnavailable).Render(w, r)
		return
	}
	http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
}

func queryOf(u *url.URL) url.Values {
	if u == nil {
		return url.Values{}
	}
	return u.Query()
}
