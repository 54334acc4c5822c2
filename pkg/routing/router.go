package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

// Router decides which tenant, if any, owns a request.
// It is safe for concurrent use; the only I/O is one directory lookup per request.
type Router struct {
	directory      tenant.Directory
	paths          *PathParser
	aliases        *AliasResolver
	env            environment.Environment
	adminSubdomain string
	adminLanding   map[string]struct{}
	logger         *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithEnvironment fixes the environment. Without it every request is
// classified from its Host header with environment.Detect.
func WithEnvironment(env environment.Environment) Option {
	return func(r *Router) {
		r.env = env
	}
}

// WithLogger sets the logger for routing decisions.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAliasPrefixes replaces the registered alias prefixes.
func WithAliasPrefixes(prefixes ...string) Option {
	return func(r *Router) {
		r.aliases = NewAliasResolver(prefixes...)
	}
}

// WithAdminSubdomain sets the host label that selects admin scope.
// An empty value disables host-based admin scope.
func WithAdminSubdomain(label string) Option {
	return func(r *Router) {
		r.adminSubdomain = tenant.NormalizeSubdomain(label)
	}
}

// WithPathParser replaces the default path parser.
func WithPathParser(p *PathParser) Option {
	return func(r *Router) {
		if p != nil {
			r.paths = p
		}
	}
}

// New creates a Router reading tenants from dir.
func New(dir tenant.Directory, opts ...Option) *Router {
	if dir == nil {
		panic("routing: tenant directory is required")
	}
	cfg := DefaultConfig()
	r := &Router{
		directory:      dir,
		paths:          NewPathParser(cfg.DefaultPage, cfg.AssetSegments...),
		aliases:        NewAliasResolver(cfg.AliasPrefixes...),
		adminSubdomain: cfg.AdminSubdomain,
		adminLanding: map[string]struct{}{
			"/admin":            {},
			"/admin/":           {},
			"/admin/dashboard":  {},
			"/admin/dashboard/": {},
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromConfig creates a Router from loaded configuration.
func NewFromConfig(dir tenant.Directory, cfg Config, opts ...Option) *Router {
	base := []Option{
		WithPathParser(NewPathParser(cfg.DefaultPage, cfg.AssetSegments...)),
		WithAliasPrefixes(cfg.AliasPrefixes...),
		WithAdminSubdomain(cfg.AdminSubdomain),
	}
	return New(dir, append(base, opts...)...)
}

// Aliases exposes the alias resolver used by the router.
func (rt *Router) Aliases() *AliasResolver {
	return rt.aliases
}

// Environment returns the environment applied to a request for host.
func (rt *Router) Environment(host string) environment.Environment {
	return environment.Resolve(rt.env, host)
}

// Route classifies a request by its Host header and path. It never fails:
// malformed input yields a public decision and directory failures yield
// KindUnavailable.
func (rt *Router) Route(ctx context.Context, host, path string) Decision {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	d := rt.route(ctx, host, path)

	attrs := []slog.Attr{
		logger.Host(host),
		logger.Path(path),
		logger.Decision(d.Kind.String()),
	}
	switch d.Kind {
	case KindTenant:
		rt.logger.LogAttrs(ctx, slog.LevelDebug, "request routed",
			append(attrs, logger.Tenant(d.TenantID), slog.String("internal_path", d.InternalPath))...)
	case KindNotFound:
		rt.logger.LogAttrs(ctx, slog.LevelInfo, "tenant not found",
			append(attrs, slog.String("candidate", d.Diagnostics.Candidate))...)
	case KindUnavailable:
		rt.logger.LogAttrs(ctx, slog.LevelError, "tenant directory unavailable",
			append(attrs, logger.Error(d.Err))...)
	default:
		rt.logger.LogAttrs(ctx, slog.LevelDebug, "request routed", attrs...)
	}
	return d
}

type candidate struct {
	id        string
	source    string
	remainder string
}

func (rt *Router) route(ctx context.Context, host, path string) Decision {
	d := Decision{Host: host, Path: path, InternalPath: path}

	p := rt.paths.Parse(path)
	d.Diagnostics.Scheme = p.Scheme

	switch p.Scheme {
	case SchemeRoot, SchemeAsset:
		d.Kind = KindPublic
		return d
	case SchemeAdmin:
		if _, ok := rt.adminLanding[path]; ok {
			d.Kind = KindRedirect
			d.Location = "/"
			return d
		}
		d.Kind = KindAdmin
		return d
	}

	info := ParseHost(host)
	env := rt.Environment(host)
	d.Diagnostics.Environment = env
	d.Diagnostics.HostSubdomain = info.Subdomain

	if info.Subdomain != "" && info.Subdomain == rt.adminSubdomain {
		d.Kind = KindAdmin
		d.Diagnostics.note("admin host subdomain")
		return d
	}

	if p.Scheme == SchemeAPI {
		return rt.resolve(ctx, d, candidate{id: p.TenantID, source: SourceAPI})
	}

	c, ok := rt.selectCandidate(env, info, p)
	if !ok {
		d.Kind = KindPublic
		return d
	}
	return rt.resolve(ctx, d, c)
}

// selectCandidate applies precedence between host and path signals: the host
// subdomain wins outside development, the path wins in development. Outside
// development only the explicit path scheme is honored.
func (rt *Router) selectCandidate(env environment.Environment, info HostInfo, p PathResult) (candidate, bool) {
	fromHost := candidate{id: info.Subdomain, source: SourceHost, remainder: rt.paths.Remainder(p.Segments)}

	if env.IsDevelopment() {
		switch p.Scheme {
		case SchemeExplicit:
			return candidate{id: p.TenantID, source: SourceExplicit, remainder: p.Remainder}, true
		case SchemeImplicit:
			return candidate{id: p.TenantID, source: SourceImplicit, remainder: p.Remainder}, true
		}
		return fromHost, info.Subdomain != ""
	}

	if info.Subdomain != "" {
		return fromHost, true
	}
	if p.Scheme == SchemeExplicit {
		return candidate{id: p.TenantID, source: SourceExplicit, remainder: p.Remainder}, true
	}
	return candidate{}, false
}

func (rt *Router) resolve(ctx context.Context, d Decision, c candidate) Decision {
	diag := &d.Diagnostics
	diag.Source = c.source
	diag.Candidate = c.id
	diag.note(fmt.Sprintf("%s candidate %q", c.source, c.id))

	canonical, prefix := rt.aliases.Match(tenant.NormalizeSubdomain(c.id))
	diag.Canonical = canonical
	diag.AliasPrefix = prefix
	if prefix != "" {
		diag.note(fmt.Sprintf("alias prefix %q stripped", prefix))
	}

	if !tenant.IsValidIdentifier(canonical) {
		diag.note("identifier rejected by syntax check")
		d.Kind = KindNotFound
		d.Reason = ReasonTenantNotFound
		return d
	}

	t, err := rt.directory.FindBySubdomain(ctx, canonical)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		diag.note("directory lookup missed")
		d.Kind = KindNotFound
		d.Reason = ReasonTenantNotFound
		return d
	case err != nil:
		diag.note("directory lookup failed")
		d.Kind = KindUnavailable
		d.Reason = "tenant directory unavailable"
		d.Err = err
		return d
	}

	diag.note(fmt.Sprintf("resolved tenant %q", t.Subdomain))
	d.Kind = KindTenant
	d.TenantID = t.Subdomain
	d.Tenant = t
	if c.source != SourceAPI {
		d.InternalPath = "/" + t.Subdomain + "/" + c.remainder
	}
	return d
}
