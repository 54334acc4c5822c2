package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidSubdomain is returned when a subdomain fails syntax checks.
	ErrInvalidSubdomain = errors.New("invalid tenant subdomain")

	// ErrReservedSubdomain is returned when a subdomain collides with a system label.
	ErrReservedSubdomain = errors.New("subdomain is reserved")

	// ErrSubdomainTaken is returned when another tenant already owns the subdomain.
	ErrSubdomainTaken = errors.New("subdomain is already taken")

	// ErrTenantIDTaken is returned when an explicit tenant ID is already in use.
	ErrTenantIDTaken = errors.New("tenant id is already taken")

	// ErrNameRequired is returned when a tenant has no display name.
	ErrNameRequired = errors.New("tenant name is required")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrUnavailable wraps failures of the backing store.
	ErrUnavailable = errors.New("tenant directory unavailable")

	// ErrInvalidSeed is returned when a seed document cannot be parsed.
	ErrInvalidSeed = errors.New("invalid tenant seed")
)
