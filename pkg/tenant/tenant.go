package tenant

import (
	"context"
	"time"
)

// Default brand colors applied when a tenant is created without them.
const (
	DefaultPrimaryColor   = "#007bff"
	DefaultSecondaryColor = "#6c757d"
)

// Tenant is a customer organization addressed by its subdomain.
// Subdomain is the canonical identifier used for routing and session scoping.
type Tenant struct {
	ID             string    `json:"id"`
	Subdomain      string    `json:"subdomain"`
	Name           string    `json:"name"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	LogoURL        string    `json:"logo_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Directory looks tenants up by canonical subdomain.
type Directory interface {
	// FindBySubdomain returns ErrTenantNotFound when nothing matches.
	// Any other error means the backing store could not answer.
	FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	List(ctx context.Context) ([]Tenant, error)
}

// Repository is a Directory that also supports administrative writes.
type Repository interface {
	Directory
	FindByID(ctx context.Context, id string) (*Tenant, error)
	Create(ctx context.Context, in CreateInput) (*Tenant, error)
	// Update applies in atomically and returns the record as it was
	// immediately before the write along with the result.
	Update(ctx context.Context, id string, in UpdateInput) (before, after *Tenant, err error)
	// Delete returns the removed tenant so callers can revoke anything
	// keyed by its subdomain.
	Delete(ctx context.Context, id string) (*Tenant, error)
}

// CreateInput holds the fields for a new tenant. ID and Subdomain are optional.
type CreateInput struct {
	ID             string `json:"id,omitempty" yaml:"id"`
	Subdomain      string `json:"subdomain" yaml:"subdomain"`
	Name           string `json:"name" yaml:"name"`
	PrimaryColor   string `json:"primary_color,omitempty" yaml:"primary_color"`
	SecondaryColor string `json:"secondary_color,omitempty" yaml:"secondary_color"`
	LogoURL        string `json:"logo_url,omitempty" yaml:"logo_url"`
}

// UpdateInput holds a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Subdomain      *string `json:"subdomain,omitempty"`
	Name           *string `json:"name,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
}

// build validates the input and produces a new tenant record. A blank
// subdomain is derived from the name.
func (in CreateInput) build(id string, now time.Time) (*Tenant, error) {
	subdomain := NormalizeSubdomain(in.Subdomain)
	if subdomain == "" {
		subdomain = SubdomainFromName(in.Name)
	}
	t := &Tenant{
		ID:             id,
		Subdomain:      subdomain,
		Name:           in.Name,
		PrimaryColor:   in.PrimaryColor,
		SecondaryColor: in.SecondaryColor,
		LogoURL:        in.LogoURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if t.PrimaryColor == "" {
		t.PrimaryColor = DefaultPrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = DefaultSecondaryColor
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// apply returns a copy of t with the update applied and validated.
func (in UpdateInput) apply(t Tenant, now time.Time) (*Tenant, error) {
	if in.Subdomain != nil {
		t.Subdomain = NormalizeSubdomain(*in.Subdomain)
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.PrimaryColor != nil {
		t.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		t.SecondaryColor = *in.SecondaryColor
	}
	if in.LogoURL != nil {
		t.LogoURL = *in.LogoURL
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.UpdatedAt = now
	return &t, nil
}

// check validates only the fields the update sets. Stored records are
// already valid, so this matches validating the merged record.
func (in UpdateInput) check() (UpdateInput, error) {
	if in.Subdomain != nil {
		sub := NormalizeSubdomain(*in.Subdomain)
		if err := ValidateSubdomain(sub); err != nil {
			return in, err
		}
		in.Subdomain = &sub
	}
	if in.Name != nil && *in.Name == "" {
		return in, ErrNameRequired
	}
	return in, nil
}

func (t *Tenant) validate() error {
	if t.Name == "" {
		return ErrNameRequired
	}
	return ValidateSubdomain(t.Subdomain)
}
