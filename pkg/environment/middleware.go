package environment

import "net/http"

// Middleware returns a middleware that attaches the environment to all
// request contexts. When env is empty the environment is detected per
// request from the Host header.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithContext(r.Context(), Resolve(env, r.Host))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
