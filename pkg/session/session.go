package session

import "time"

// Role of a principal.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
)

// Principal is the authenticated identity stored with a session.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
	// TenantID is empty for platform users.
	TenantID string `json:"tenant_id,omitempty"`
}

// IsSuperAdmin reports whether p may use the admin surface.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// HasRole reports whether p holds any of roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Session is a server-side session record. The token is the only part the
// client ever sees.
type Session struct {
	Token     string    `json:"token"`
	ScopeKey  string    `json:"scope_key"`
	Principal Principal `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
