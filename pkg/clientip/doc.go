// Package clientip resolves the client address of an HTTP request from
// proxy headers (CF-Connecting-IP, X-Forwarded-For, X-Real-IP) with a
// RemoteAddr fallback, and carries it through the request context.
//
//	r.Use(clientip.Middleware)
//	ip := clientip.GetIPFromContext(r.Context())
package clientip
