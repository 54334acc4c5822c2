package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/tenantgate/pkg/cookie"
	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
)

// Manager issues and validates scoped sessions and moves their tokens over
// signed cookies named {scopeKey}_session.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	ttl     time.Duration
	secure  bool
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSecureCookies sets the Secure flag on every session cookie. Without it
// the flag is still set for requests whose context carries the production
// environment.
func WithSecureCookies(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Manager. Both store and cookies are required.
func New(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}
	if cookies == nil {
		panic("session: cookie manager is required")
	}
	m := &Manager{
		store:   store,
		cookies: cookies,
		ttl:     DefaultConfig().TTL,
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a Manager from loaded configuration.
func NewFromConfig(cfg Config, store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	base := []Option{WithTTL(cfg.TTL), WithSecureCookies(cfg.SecureCookies)}
	return New(store, cookies, append(base, opts...)...)
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create issues a new session for p in scope. A principal the scope does not
// admit gets ErrScopeDenied.
func (m *Manager) Create(ctx context.Context, scope Scope, p Principal) (*Session, error) {
	if err := ValidateScopeKey(scope.Key); err != nil {
		return nil, err
	}
	if !scope.Admits(p) {
		return nil, ErrScopeDenied
	}
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := m.now()
	sess := &Session{
		Token:     token,
		ScopeKey:  scope.Key,
		Principal: p,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, sess); err != nil {
		m.logFailure(ctx, "create session", scope.Key, err)
		return nil, err
	}
	return sess, nil
}

// Validate returns the session of token in scope. Every "no session"
// outcome is ErrSessionNotFound: a token issued under another scope key, an
// expired one, and one whose principal the scope no longer admits, such as
// a user moved to another tenant or demoted from super admin.
func (m *Manager) Validate(ctx context.Context, scope Scope, token string) (*Session, error) {
	if token == "" || ValidateScopeKey(scope.Key) != nil {
		return nil, ErrSessionNotFound
	}
	sess, err := m.store.Get(ctx, scope.Key, token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logFailure(ctx, "load session", scope.Key, err)
		}
		return nil, err
	}
	if sess.ScopeKey != scope.Key || sess.IsExpired(m.now()) || !scope.Admits(sess.Principal) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Destroy removes the session of token under scopeKey.
func (m *Manager) Destroy(ctx context.Context, scopeKey, token string) error {
	if token == "" || ValidateScopeKey(scopeKey) != nil {
		return nil
	}
	if err := m.store.Delete(ctx, scopeKey, token); err != nil {
		m.logFailure(ctx, "delete session", scopeKey, err)
		return err
	}
	return nil
}

// RevokeScope removes every session of scopeKey.
func (m *Manager) RevokeScope(ctx context.Context, scopeKey string) error {
	if err := ValidateScopeKey(scopeKey); err != nil {
		return err
	}
	if err := m.store.DeleteScope(ctx, scopeKey); err != nil {
		m.logFailure(ctx, "revoke scope", scopeKey, err)
		return err
	}
	return nil
}

// Login creates a session and sets its cookie.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, scope Scope, p Principal) (*Session, error) {
	sess, err := m.Create(r.Context(), scope, p)
	if err != nil {
		return nil, err
	}
	m.cookies.SetSigned(w, CookieName(scope.Key), sess.Token, m.cookieOptions(r, int(m.ttl.Seconds()))...)
	return sess, nil
}

// Current returns the session carried by the request's cookie for scope.
func (m *Manager) Current(r *http.Request, scope Scope) (*Session, error) {
	if ValidateScopeKey(scope.Key) != nil {
		return nil, ErrSessionNotFound
	}
	token, err := m.cookies.GetSigned(r, CookieName(scope.Key))
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return m.Validate(r.Context(), scope, token)
}

// Logout destroys the request's session for scope and clears its cookie.
// Logging out without a session succeeds.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request, scope Scope) error {
	if ValidateScopeKey(scope.Key) != nil {
		return ErrInvalidScope
	}
	name := CookieName(scope.Key)
	m.cookies.Delete(w, name, m.cookieOptions(r, -1)...)
	token, err := m.cookies.GetSigned(r, name)
	if err != nil {
		return nil
	}
	return m.Destroy(r.Context(), scope.Key, token)
}

func (m *Manager) cookieOptions(r *http.Request, maxAge int) []cookie.Option {
	return []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(m.secure || environment.IsProduction(r.Context())),
		cookie.WithMaxAge(maxAge),
	}
}

func (m *Manager) logFailure(ctx context.Context, op, scopeKey string, err error) {
	m.logger.ErrorContext(ctx, "session store failure",
		logger.Event(op),
		logger.Scope(scopeKey),
		logger.Error(err),
	)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
