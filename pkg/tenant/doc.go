// Package tenant holds the tenant model and the directories that resolve a
// canonical subdomain to a tenant record.
//
// Three Repository implementations are provided:
//
//   - MemoryDirectory keeps tenants in process memory, intended for development and tests.
//   - PostgresDirectory stores tenants in the tenants table through pgx.
//   - CachedDirectory wraps either one with a ristretto cache and collapses
//     concurrent lookups of the same subdomain into a single backend call.
//
// Lookups return ErrTenantNotFound when nothing matches. Any other error means
// the backend could not answer and wraps ErrUnavailable.
//
// # Usage
//
//	repo := tenant.NewMemoryDirectory()
//	if _, err := tenant.Seed(ctx, repo, seedFile); err != nil {
//		return err
//	}
//
//	dir, err := tenant.NewCachedDirectory(repo, tenant.CacheConfig{TTL: time.Minute})
//	if err != nil {
//		return err
//	}
//	defer dir.Close()
//
//	t, err := dir.FindBySubdomain(ctx, "alnajah")
//
// Subdomains are validated with ValidateSubdomain: lowercase letters, digits
// and hyphens, starting with a letter or digit, at most 63 characters. The
// labels admin, www, api and tenant are reserved.
//
// Request handlers read the resolved tenant with FromContext.
package tenant
