package account

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrymomot/tenantgate/pkg/session"
)

// User is an account that can sign in. Platform users have no TenantID.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         session.Role
	TenantID     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Principal returns the identity stored in a session for u.
func (u *User) Principal() session.Principal {
	return session.Principal{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		TenantID: u.TenantID,
	}
}

// BelongsTo reports whether u is a member of the tenant with id tenantID.
func (u *User) BelongsTo(tenantID string) bool {
	return u.TenantID != "" && u.TenantID == tenantID
}

// CreateInput holds the fields of a new user. Password is hashed on create.
type CreateInput struct {
	ID       string
	Email    string
	Name     string
	Password string
	Role     session.Role
	TenantID string
}

// Repository stores users.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]User, error)
	Create(ctx context.Context, in CreateInput) (*User, error)
	// DeleteByTenant removes every member of a tenant and reports how many were removed.
	DeleteByTenant(ctx context.Context, tenantID string) (int, error)
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
