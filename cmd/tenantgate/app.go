package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/modules/admin"
	"github.com/dmitrymomot/tenantgate/modules/auth"
	"github.com/dmitrymomot/tenantgate/pkg/account"
	"github.com/dmitrymomot/tenantgate/pkg/clientip"
	"github.com/dmitrymomot/tenantgate/pkg/cookie"
	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/httpserver"
	"github.com/dmitrymomot/tenantgate/pkg/ratelimiter"
	"github.com/dmitrymomot/tenantgate/pkg/requestid"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

// app is the wired HTTP surface.
type app struct {
	handler http.Handler
	tenants *tenant.CachedDirectory
	users   *account.MemoryRepository
	close   func()
}

func newApp(cfg appConfig, env environment.Environment, st *stores, log *slog.Logger) (*app, error) {
	cacheCfg := cfg.Cache
	if st.sharedTenants {
		cacheCfg = cacheCfg.Shared()
	}
	tenants, err := tenant.NewCachedDirectory(st.tenants, cacheCfg)
	if err != nil {
		return nil, err
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		tenants.Close()
		return nil, err
	}
	limiterStore := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.NewBucket(limiterStore, cfg.Login)
	if err != nil {
		limiterStore.Close()
		tenants.Close()
		return nil, err
	}

	users := account.NewMemoryRepository(cfg.PasswordCost)
	sessions := session.NewFromConfig(cfg.Session, st.sessions, cookies,
		session.WithLogger(log),
		session.WithSecureCookies(cfg.Session.SecureCookies || env == environment.Production),
	)
	router := routing.NewFromConfig(tenants, cfg.Routing,
		routing.WithEnvironment(env),
		routing.WithLogger(log),
	)

	authSvc := auth.New(sessions, users,
		auth.WithLogger(log),
		auth.WithLoginLimiter(limiter),
	)
	adminSvc := admin.New(tenants, users, sessions, router,
		admin.WithLogger(log),
		admin.WithURLs(cfg.Routing.BaseDomain, cfg.Routing.DevHost),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware, environment.Middleware(env))
	r.NotFound(jsonStatus(handler.ErrNotFound))
	r.MethodNotAllowed(jsonStatus(handler.ErrMethodNotAllowed))

	// Probes sit outside tenant routing so their paths never resolve as tenants.
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.ReadinessTimeout, st.checks...))

	r.Group(func(r chi.Router) {
		r.Use(router.Middleware())
		r.Use(sessions.Load(decisionScope))

		r.Mount("/api/admin/auth", authSvc.AdminRoutes())
		r.Mount("/api/admin/tenants", adminSvc.TenantRoutes())
		if cfg.DebugRoutes {
			r.Mount("/api/debug", adminSvc.DebugRoutes())
		}
		r.Mount("/api/{tenant}/auth", authSvc.TenantRoutes())

		pages := newPages(cfg.ServiceName, log)
		r.Get("/", pages.handler())
		r.Get("/*", pages.handler())
	})

	return &app{
		handler: r,
		tenants: tenants,
		users:   users,
		close: func() {
			limiterStore.Close()
			tenants.Close()
		},
	}, nil
}

// decisionScope maps the routing decision to the session scope it opens.
func decisionScope(r *http.Request) session.Scope {
	d, _ := routing.DecisionFromContext(r.Context())
	switch {
	case d.Kind == routing.KindAdmin:
		return session.AdminScope()
	case d.Kind == routing.KindTenant && d.Tenant != nil:
		return session.TenantScope(d.Tenant)
	}
	return session.Scope{}
}

func jsonStatus(err handler.HTTPError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(err).Render(w, r)
	}
}
