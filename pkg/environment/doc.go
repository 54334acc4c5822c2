// Package environment propagates the application environment (development,
// staging, production) through context.Context, HTTP requests and structured logs.
//
// The environment is normally configured explicitly with APP_ENV and parsed
// with Parse. When it is not configured, Detect falls back to the shape of the
// Host header: a host with a localhost label or a loopback IP literal is
// development, anything else is production.
//
// # Usage
//
//	env, _ := environment.Parse(os.Getenv("APP_ENV"))
//	handler = environment.Middleware(env)(handler)
//
//	if environment.IsProduction(r.Context()) {
//		// production-specific behaviour
//	}
//
// Add the environment to log records with LoggerExtractor and the logger
// package's WithContextExtractors option.
package environment
