package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

// hiddenHeaders are never echoed by the debug endpoint.
var hiddenHeaders = map[string]struct{}{
	"Authorization": {},
	"Cookie":        {},
}

type debugRequest struct {
	Tenant string `query:"tenant"`
}

type debugTenant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Subdomain      string    `json:"subdomain"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	CreatedAt      time.Time `json:"created_at"`
}

type routingExample struct {
	Tenant string            `json:"tenant"`
	Paths  map[string]string `json:"paths"`
}

type tenantValidation struct {
	Param           string       `json:"tenant_param"`
	Canonical       string       `json:"canonical"`
	AliasPrefix     string       `json:"alias_prefix,omitempty"`
	ValidIdentifier bool         `json:"valid_identifier"`
	Exists          bool         `json:"exists"`
	Details         *debugTenant `json:"details"`
	PathExamples    []string     `json:"valid_path_examples"`
	APIEndpoints    []string     `json:"valid_api_endpoints"`
}

type requestInfo struct {
	Method  string            `json:"method"`
	Host    string            `json:"host"`
	Path    string            `json:"path"`
	Query   string            `json:"query,omitempty"`
	Headers map[string]string `json:"headers"`
	Cookies []string          `json:"cookies"`
	Scope   string            `json:"scope,omitempty"`
}

func (s *Service) debugTenants(ctx handler.Context, req debugRequest) handler.Response {
	list, err := s.tenants.List(ctx)
	if err != nil {
		return s.tenantFailure(ctx, "debug", err)
	}

	r := ctx.Request()
	env := s.router.Environment(r.Host)

	tenants := make([]debugTenant, 0, len(list))
	examples := make([]routingExample, 0, len(list))
	for i := range list {
		t := &list[i]
		tenants = append(tenants, newDebugTenant(t))
		examples = append(examples, routingExample{
			Tenant: t.Subdomain,
			Paths: map[string]string{
				"dashboard": routing.TenantPath(t.Subdomain, "dashboard"),
				"login":     routing.TenantPath(t.Subdomain, "login"),
				"api":       "/api/" + t.Subdomain + "/auth/tenant-info",
				"url":       routing.TenantURL(env, t.Subdomain, "dashboard", s.baseDomain, s.devHost),
			},
		})
	}

	var validation *tenantValidation
	if req.Tenant != "" {
		validation, err = s.validate(ctx, req.Tenant)
		if err != nil {
			return s.tenantFailure(ctx, "debug", err)
		}
	}

	return handler.JSON(map[string]any{
		"message":           "Debug tenant information",
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
		"count":             len(tenants),
		"tenants":           tenants,
		"tenant_validation": validation,
		"routing_examples":  examples,
		"request_info":      newRequestInfo(r),
		"environment":       string(env),
		"path_help": map[string]any{
			"development": map[string]string{
				"dashboard": "/tenant/[subdomain]/dashboard",
				"login":     "/tenant/[subdomain]/login",
				"api":       "/api/[subdomain]/auth/tenant-info",
			},
			"production": map[string]string{
				"dashboard": "https://[subdomain]." + s.baseDomain + "/dashboard",
				"login":     "https://[subdomain]." + s.baseDomain + "/login",
				"api":       "https://[subdomain]." + s.baseDomain + "/api/[subdomain]/auth/tenant-info",
			},
		},
	})
}

func (s *Service) validate(ctx handler.Context, param string) (*tenantValidation, error) {
	canonical, prefix := s.router.Aliases().Match(tenant.NormalizeSubdomain(param))
	v := &tenantValidation{
		Param:           param,
		Canonical:       canonical,
		AliasPrefix:     prefix,
		ValidIdentifier: tenant.IsValidIdentifier(canonical),
		PathExamples:    []string{},
		APIEndpoints:    []string{},
	}
	if !v.ValidIdentifier {
		return v, nil
	}

	t, err := s.tenants.FindBySubdomain(ctx, canonical)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		return v, nil
	case err != nil:
		return nil, err
	}

	details := newDebugTenant(t)
	v.Exists = true
	v.Details = &details
	v.PathExamples = []string{
		routing.TenantPath(t.Subdomain, "dashboard"),
		routing.TenantPath(t.Subdomain, "login"),
	}
	v.APIEndpoints = []string{
		"/api/" + t.Subdomain + "/auth/tenant-info",
		"/api/" + t.Subdomain + "/auth/login",
		"/api/" + t.Subdomain + "/auth/logout",
	}
	return v, nil
}

func newDebugTenant(t *tenant.Tenant) debugTenant {
	return debugTenant{
		ID:             t.ID,
		Name:           t.Name,
		Subdomain:      t.Subdomain,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
		CreatedAt:      t.CreatedAt,
	}
}

func newRequestInfo(r *http.Request) requestInfo {
	info := requestInfo{
		Method:  r.Method,
		Host:    r.Host,
		Path:    r.URL.Path,
		Query:   r.URL.RawQuery,
		Headers: make(map[string]string, len(r.Header)),
		Cookies: []string{},
	}
	for name, values := range r.Header {
		if _, hidden := hiddenHeaders[name]; hidden || len(values) == 0 {
			continue
		}
		info.Headers[name] = values[0]
	}
	// Names only: values are session credentials.
	for _, c := range r.Cookies() {
		info.Cookies = append(info.Cookies, c.Name)
	}
	if d, ok := routing.DecisionFromContext(r.Context()); ok {
		info.Scope = d.ScopeKey()
	}
	return info
}
