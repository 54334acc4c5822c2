package account

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	ID       string       `yaml:"id"`
	Email    string       `yaml:"email"`
	Name     string       `yaml:"name"`
	Password string       `yaml:"password"`
	Role     session.Role `yaml:"role"`
	// Tenant is the subdomain of the tenant the user belongs to.
	Tenant string `yaml:"tenant"`
}

// Seed creates the users listed under "users:" in a YAML document, resolving
// each tenant reference by subdomain. Users whose email exists are skipped.
// It returns the number of users created.
func Seed(ctx context.Context, users Repository, tenants tenant.Directory, r io.Reader) (int, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return 0, errors.Join(ErrInvalidSeed, err)
	}

	created := 0
	for i, su := range f.Users {
		if _, err := users.FindByEmail(ctx, su.Email); err == nil {
			continue
		}

		in := CreateInput{
			ID:       su.ID,
			Email:    su.Email,
			Name:     su.Name,
			Password: su.Password,
			Role:     su.Role,
		}
		if su.Tenant != "" {
			t, err := tenants.FindBySubdomain(ctx, su.Tenant)
			if err != nil {
				return created, fmt.Errorf("%w: user %d (%s): tenant %q: %w", ErrInvalidSeed, i, su.Email, su.Tenant, err)
			}
			in.TenantID = t.ID
		}
		if _, err := users.Create(ctx, in); err != nil {
			return created, fmt.Errorf("%w: user %d (%s): %w", ErrInvalidSeed, i, su.Email, err)
		}
		created++
	}
	return created, nil
}
