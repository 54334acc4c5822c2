package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

const minSecretLength = 32

// Manager writes and reads cookies signed with HMAC-SHA256.
// The first secret signs, every secret verifies.
type Manager struct {
	secrets  [][]byte
	defaults Options
}

// New creates a Manager. Empty secrets are ignored; the rest must be at least
// 32 characters long.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([][]byte, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		keys = append(keys, []byte(s))
	}

	return &Manager{
		secrets: keys,
		defaults: Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}.with(opts),
	}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	http.SetCookie(w, m.defaults.with(opts).cookie(name, value))
}

// Get reads a plain cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires a cookie. Options must match the ones it was set with.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	http.SetCookie(w, m.defaults.with(opts).expired(name))
}

// SetSigned writes a cookie whose value can only be read back under the same name.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(name, value), opts...)
}

// GetSigned reads a signed cookie. A value signed for another cookie name
// fails with ErrInvalidSignature.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, raw)
}

func (m *Manager) sign(name, value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + mac(m.secrets[0], name, value)
}

func (m *Manager) verify(name, raw string) (string, error) {
	encoded, sig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, key := range m.secrets {
		if hmac.Equal([]byte(sig), []byte(mac(key, name, string(value)))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func mac(key []byte, name, value string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
