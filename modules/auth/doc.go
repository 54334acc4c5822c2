// Package auth serves the login, logout and session endpoints of the tenant
// and admin scopes.
//
//	svc := auth.New(sessions, users, auth.WithLogger(log))
//	r.Mount("/api/admin/auth", svc.AdminRoutes())
//	r.Mount("/api/{tenant}/auth", svc.TenantRoutes())
//
// Tenant routes read the tenant resolved by the routing middleware and issue
// the {subdomain}_session cookie; admin routes issue admin_session and only
// accept SUPER_ADMIN users. Credentials of a user from another tenant are
// rejected exactly like a wrong password.
package auth
