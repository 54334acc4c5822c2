package session

import "github.com/dmitrymomot/tenantgate/pkg/tenant"

// AdminScopeKey is the scope key of the admin surface.
const AdminScopeKey = "admin"

// Scope is where a session is valid. Key is "admin" or a tenant's canonical
// subdomain and names both the store key space and the cookie. TenantID
// binds a tenant scope to the tenant the key resolved to. The zero Scope
// means the request has no session scope.
type Scope struct {
	Key      string
	TenantID string
}

// AdminScope is the scope of the admin surface.
func AdminScope() Scope {
	return Scope{Key: AdminScopeKey}
}

// TenantScope is the scope of t. A nil tenant yields the zero Scope.
func TenantScope(t *tenant.Tenant) Scope {
	if t == nil {
		return Scope{}
	}
	return Scope{Key: t.Subdomain, TenantID: t.ID}
}

// IsZero reports whether s names no scope.
func (s Scope) IsZero() bool {
	return s.Key == ""
}

// IsAdmin reports whether s is the admin scope.
func (s Scope) IsAdmin() bool {
	return s.Key == AdminScopeKey
}

// Admits reports whether p may hold a session in s. The admin scope takes
// super admins only. A tenant scope takes principals of that tenant only.
func (s Scope) Admits(p Principal) bool {
	if s.IsAdmin() {
		return p.IsSuperAdmin()
	}
	return s.TenantID != "" && p.TenantID == s.TenantID
}

// CookieName returns the cookie carrying the session token of a scope key.
func CookieName(scopeKey string) string {
	return scopeKey + "_session"
}

// ValidateScopeKey checks that key can name a session scope.
func ValidateScopeKey(key string) error {
	if !tenant.IsValidIdentifier(key) {
		return ErrInvalidScope
	}
	return nil
}
