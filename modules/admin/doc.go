// Package admin serves tenant administration for super admins and the
// routing diagnostics endpoint.
//
//	svc := admin.New(tenants, users, sessions, router, admin.WithLogger(log))
//	r.Mount("/api/admin/tenants", svc.TenantRoutes())
//	r.Mount("/api/debug", svc.DebugRoutes())
//
// Renaming or deleting a tenant revokes every session stored under its old
// subdomain, and deleting it also removes its users.
package admin
