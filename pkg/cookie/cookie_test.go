package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantgate/pkg/cookie"
)

const (
	secret    = "0123456789abcdef0123456789abcdef"
	oldSecret = "fedcba9876543210fedcba9876543210"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{secret}
	}
	m, err := cookie.New(secrets)
	require.NoError(t, err)
	return m
}

// replay copies the cookies a response set onto a new request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		err     error
	}{
		{"valid", []string{secret}, nil},
		{"rotation", []string{secret, oldSecret}, nil},
		{"no secrets", nil, cookie.ErrNoSecret},
		{"only empty secrets", []string{"", ""}, cookie.ErrNoSecret},
		{"short secret", []string{"short"}, cookie.ErrSecretTooShort},
		{"short secondary secret", []string{secret, "short"}, cookie.ErrSecretTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := cookie.New(tt.secrets)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "almajd_session", "token-123")

		got, err := m.GetSigned(replay(rec), "almajd_session")
		require.NoError(t, err)
		assert.Equal(t, "token-123", got)
	})

	t.Run("value is not stored in clear", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "admin_session", "token-123")
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.NotEqual(t, "token-123", cookies[0].Value)
		assert.Contains(t, cookies[0].Value, ".")
	})

	t.Run("signature is bound to cookie name", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "alnajah_session", "token-123")
		value := rec.Result().Cookies()[0].Value

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "almajd_session", Value: value})
		_, err := m.GetSigned(req, "almajd_session")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "admin_session", "token-123")
		value := rec.Result().Cookies()[0].Value
		_, sig, _ := strings.Cut(value, ".")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "admin_session", Value: "dG9rZW4tNDU2." + sig})
		_, err := m.GetSigned(req, "admin_session")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed values", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		for _, v := range []string{"no-separator", "!!!.sig"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "admin_session", Value: v})
			_, err := m.GetSigned(req, "admin_session")
			assert.ErrorIs(t, err, cookie.ErrInvalidFormat, v)
		}
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "admin_session")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("rotated secret still verifies", func(t *testing.T) {
		t.Parallel()
		old := newManager(t, oldSecret)
		rec := httptest.NewRecorder()
		old.SetSigned(rec, "admin_session", "token-123")

		rotated := newManager(t, secret, oldSecret)
		got, err := rotated.GetSigned(replay(rec), "admin_session")
		require.NoError(t, err)
		assert.Equal(t, "token-123", got)

		fresh := newManager(t, secret)
		_, err = fresh.GetSigned(replay(rec), "admin_session")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})
}

func TestManager_Attributes(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		m.Set(rec, "a", "b")
		c := rec.Result().Cookies()[0]
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.False(t, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("per call options override defaults", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "a", "b", cookie.WithMaxAge(86400), cookie.WithPath("/app"), cookie.WithSameSite(http.SameSiteStrictMode))
		c := rec.Result().Cookies()[0]
		assert.True(t, c.Secure)
		assert.Equal(t, 86400, c.MaxAge)
		assert.Equal(t, "/app", c.Path)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

		rec = httptest.NewRecorder()
		m.Set(rec, "c", "d")
		assert.Equal(t, "/", rec.Result().Cookies()[0].Path)
	})

	t.Run("delete expires cookie", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		m.Delete(rec, "admin_session")
		c := rec.Result().Cookies()[0]
		assert.Equal(t, "admin_session", c.Name)
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + secret + " , " + oldSecret, Secure: true, Domain: "yourapp.com"})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	m.Set(rec, "a", "b")
	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, "yourapp.com", c.Domain)

	_, err = cookie.NewFromConfig(cookie.Config{Secrets: " , "})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
