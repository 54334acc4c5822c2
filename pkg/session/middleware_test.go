package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantgate/pkg/session"
)

func principalEcho(t *testing.T, got *session.Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := session.PrincipalFromContext(r.Context()); ok {
			*got = p
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func loggedIn(t *testing.T, m *session.Manager, scope session.Scope, p session.Principal) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	_, err := m.Login(rec, httptest.NewRequest(http.MethodPost, "/", nil), scope, p)
	require.NoError(t, err)
	return withCookies(rec)
}

func TestManager_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("load adds session when present", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)
		var got session.Principal
		rec := httptest.NewRecorder()
		m.Load(session.FixedScope(almajd))(principalEcho(t, &got)).ServeHTTP(rec, loggedIn(t, m, almajd, almajdUser))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, almajdUser, got)
	})

	t.Run("load passes anonymous requests", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)
		var got session.Principal
		rec := httptest.NewRecorder()
		m.Load(session.FixedScope(almajd))(principalEcho(t, &got)).ServeHTTP(rec, loggedIn(t, m, alnajah, alnajahAdmin))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, got.ID)
	})

	t.Run("require rejects missing session", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)
		var got session.Principal
		rec := httptest.NewRecorder()
		m.Require(session.FixedScope(almajd))(principalEcho(t, &got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "unauthorized")
	})

	t.Run("require rejects request without scope", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)
		var got session.Principal
		rec := httptest.NewRecorder()
		m.Require(session.FixedScope(session.Scope{}))(principalEcho(t, &got)).ServeHTTP(rec, loggedIn(t, m, almajd, almajdUser))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("require role", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)
		var got session.Principal
		h := m.Require(session.FixedScope(almajd), session.RoleAdmin)(principalEcho(t, &got))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, loggedIn(t, m, almajd, almajdUser))
		assert.Equal(t, http.StatusForbidden, rec.Code)

		almajdAdmin := session.Principal{ID: "4", Email: "admin@almajd.com", Role: session.RoleAdmin, TenantID: "t-almajd"}
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, loggedIn(t, m, almajd, almajdAdmin))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, almajdAdmin, got)
	})

	t.Run("require admin scope", func(t *testing.T) {
		t.Parallel()
		m, store := newManager(t)
		var got session.Principal
		h := m.Require(session.FixedScope(admin))(principalEcho(t, &got))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, loggedIn(t, m, admin, superAdmin))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, superAdmin, got)

		// A stored admin session of a plain user is treated as absent.
		now := time.Now()
		require.NoError(t, store.Create(context.Background(), &session.Session{
			Token:     "tok-user",
			ScopeKey:  session.AdminScopeKey,
			Principal: almajdUser,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		signed := httptest.NewRecorder()
		newCookies(t).SetSigned(signed, session.CookieName(session.AdminScopeKey), "tok-user")
		for _, c := range signed.Result().Cookies() {
			req.AddCookie(c)
		}
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("load drops foreign tenant session", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)
		req := loggedIn(t, m, almajd, almajdUser)

		// Same cookie name, but the key now resolves to a different tenant.
		moved := session.Scope{Key: "almajd", TenantID: "t-elsewhere"}
		var got session.Principal
		rec := httptest.NewRecorder()
		m.Load(session.FixedScope(moved))(principalEcho(t, &got)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, got.ID)
	})

	t.Run("require reports store failure", func(t *testing.T) {
		t.Parallel()
		ok, _ := newManager(t)
		req := loggedIn(t, ok, almajd, almajdUser)

		broken := session.New(brokenStore{}, newCookies(t))
		var got session.Principal
		rec := httptest.NewRecorder()
		broken.Require(session.FixedScope(almajd))(principalEcho(t, &got)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)
	_, ok = session.FromContext(session.WithSession(context.Background(), nil))
	assert.False(t, ok)

	ctx := session.WithSession(context.Background(), &session.Session{Principal: superAdmin})
	p, ok := session.PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.True(t, p.IsSuperAdmin())

	attr, ok := session.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "1", attr.Value.String())

	_, ok = session.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}

func TestCookieName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "admin_session", session.CookieName(session.AdminScopeKey))
	assert.Equal(t, "alnajah_session", session.CookieName("alnajah"))
}

func TestPrincipal_HasRole(t *testing.T) {
	t.Parallel()
	assert.True(t, alnajahAdmin.HasRole(session.RoleAdmin, session.RoleSuperAdmin))
	assert.False(t, almajdUser.HasRole(session.RoleAdmin))
	assert.False(t, almajdUser.HasRole())
}
