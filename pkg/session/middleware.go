package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/tenantgate/handler"
)

// ScopeFunc names the session scope of a request, or the zero Scope when it
// has none.
type ScopeFunc func(r *http.Request) Scope

// Load puts the request's session, if any, in the context. Only sessions the
// scope admits are loaded.
func (m *Manager) Load(scope ScopeFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sc := scope(r); !sc.IsZero() {
				if sess, err := m.Current(r, sc); err == nil {
					r = r.WithContext(WithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require rejects requests without a session in their scope with 401, and
// with 503 when the store cannot answer. With roles set, other principals get 403.
func (m *Manager) Require(scope ScopeFunc, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc := scope(r)
			if sc.IsZero() {
				_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
				return
			}
			sess, err := m.Current(r, sc)
			switch {
			case errors.Is(err, ErrSessionNotFound):
				_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
				return
			case err != nil:
				_ = handler.JSONError(handler.ErrServiceUnavailable).Render(w, r)
				return
			}
			if len(roles) > 0 && !sess.Principal.HasRole(roles...) {
				_ = handler.JSONError(handler.ErrForbidden).Render(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// FixedScope always names s.
func FixedScope(s Scope) ScopeFunc {
	return func(*http.Request) Scope { return s }
}
