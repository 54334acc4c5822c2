// Package session keeps server-side sessions isolated per scope.
//
// A scope key is "admin" for the admin surface or a tenant's canonical
// subdomain. Sessions are stored under (scope key, token) and the token
// travels in a signed cookie named {scopeKey}_session, so each tenant and
// the admin surface have their own cookie and their own key space. A token
// presented under any other scope key is reported as ErrSessionNotFound,
// exactly like a missing or expired one.
//
// A Scope also carries the access rule: the admin scope admits super admins
// only, and a tenant scope admits only principals whose TenantID is the
// tenant's id. Create refuses other principals with ErrScopeDenied and
// Validate treats their sessions as missing.
//
//	store := session.NewMemoryStore(5 * time.Minute)
//	defer store.Close()
//	mgr := session.New(store, cookies, session.WithSecureCookies(true))
//
//	scope := session.TenantScope(t)
//	sess, err := mgr.Login(w, r, scope, principal)
//	sess, err = mgr.Current(r, scope)
//	err = mgr.Logout(w, r, scope)
//
// Cookies are Secure when WithSecureCookies is set or the request context
// carries the production environment.
//
// MemoryStore suits single instances and tests. RedisStore shares sessions
// between instances and lets Redis expire them.
//
// Storage failures are returned wrapped in ErrStoreUnavailable so callers
// can answer 503 instead of treating the user as logged out.
package session
