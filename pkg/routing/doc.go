// Package routing decides which tenant owns an HTTP request.
//
// A Router combines three signals: the Host header (ParseHost), the request
// path (PathParser) and alias prefixes (AliasResolver). Paths are matched by
// an ordered list of rules, first match wins:
//
//	/admin...           admin scope, /admin and /admin/dashboard redirect to /
//	/                   public landing
//	/api/admin|debug/.. admin scope
//	/api/{tenant}/...   tenant api, never rewritten
//	/_next, /static ... assets, public
//	/tenant/{id}/...    explicit tenant path
//	/{id}/...           implicit tenant path
//
// Outside development the host subdomain wins and only the explicit path
// scheme is honored without one. In development the path wins. The resolved
// tenant is served at /{subdomain}/{page}.
//
// Route never fails. Every outcome is a Decision:
//
//	rt := routing.New(dir, routing.WithEnvironment(environment.Production))
//	d := rt.Route(ctx, "alnajah.yourapp.com", "/dashboard")
//	// d.Kind == routing.KindTenant, d.InternalPath == "/alnajah/dashboard"
//
// Router.Middleware applies decisions to HTTP traffic: it rewrites tenant
// paths, stores the tenant and the decision in the request context, renders
// a diagnostics page for unknown tenants and answers 503 when the directory
// is unavailable.
package routing
