// Package httpserver runs an http.Server with graceful shutdown and serves
// liveness and readiness probes.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	r.Get("/healthz", httpserver.LivenessHandler())
//	r.Get("/readyz", httpserver.ReadinessHandler(log, 2*time.Second,
//		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// Run returns after ctx is cancelled or SIGINT/SIGTERM arrives and in-flight
// requests have drained or the shutdown timeout elapsed.
package httpserver
