// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped attributes pulled from context.Context.
//
// New wraps a text or JSON slog handler so that every registered
// ContextExtractor runs on each record. The routing, tenant,
// session and requestid packages export extractors so that a log line written
// while serving a request carries request_id, tenant, scope and env without
// the caller passing them.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(env, "tenantgate"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//			routing.LoggerExtractor(),
//		),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "tenant routed",
//		logger.Host(r.Host),
//		logger.Path(r.URL.Path),
//		logger.Tenant(t.Subdomain),
//	)
//
// WithEnvironment picks JSON at info level for production and staging and
// text at debug level otherwise. Config (LOG_LEVEL, LOG_FORMAT) overrides the
// preset. WithFormat panics on unknown formats.
//
// Attribute helpers in attr.go keep key names consistent across packages.
package logger
