// Package account holds the users that sign in to tenants and to the admin
// surface, and verifies their passwords with bcrypt.
//
// A user either belongs to one tenant (TenantID set, role ADMIN or USER) or
// is a platform user. Only SUPER_ADMIN users may open an admin session.
//
//	users := account.NewMemoryRepository(bcrypt.DefaultCost)
//	_, err := account.Seed(ctx, users, tenants, seedFile)
//	auth := account.NewAuthenticator(users)
//	u, err := auth.Authenticate(ctx, "admin@alnajah.com", "password123")
package account
