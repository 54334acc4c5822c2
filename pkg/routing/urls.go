package routing

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/tenantgate/pkg/environment"
)

// TenantPath returns the path-based address of a tenant page, as used on
// development hosts: /tenant/{subdomain}/{page}.
func TenantPath(subdomain, page string) string {
	page = strings.TrimPrefix(page, "/")
	if page == "" {
		page = DefaultPage
	}
	return "/" + explicitSegment + "/" + subdomain + "/" + page
}

// TenantURL returns the public address of a tenant page. Development uses the
// path scheme on devHost over http; other environments use
// https://{subdomain}.{baseDomain}/{page}.
func TenantURL(env environment.Environment, subdomain, page, baseDomain, devHost string) string {
	if env.IsDevelopment() {
		u := url.URL{Scheme: "http", Host: devHost, Path: TenantPath(subdomain, page)}
		return u.String()
	}
	page = strings.TrimPrefix(page, "/")
	if page == "" {
		page = DefaultPage
	}
	u := url.URL{Scheme: "https", Host: subdomain + "." + baseDomain, Path: "/" + page}
	return u.String()
}
