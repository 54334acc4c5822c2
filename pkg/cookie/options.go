package cookie

import (
	"net/http"
	"time"
)

// Options are the attributes written with a cookie. Delete must be called
// with the same Path and Domain the cookie was set with.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option overrides one attribute for a Manager or a single call.
type Option func(*Options)

// WithPath scopes the cookie to path.
func WithPath(path string) Option { return func(o *Options) { o.Path = path } }

// WithDomain sets the Domain attribute. Leave it empty for host-only cookies,
// which keeps a tenant cookie from leaking to sibling subdomains.
func WithDomain(domain string) Option { return func(o *Options) { o.Domain = domain } }

// WithMaxAge sets the lifetime in seconds. Zero means a browser-session cookie.
func WithMaxAge(seconds int) Option { return func(o *Options) { o.MaxAge = seconds } }

// WithSecure marks the cookie HTTPS-only.
func WithSecure(secure bool) Option { return func(o *Options) { o.Secure = secure } }

// WithHTTPOnly hides the cookie from scripts.
func WithHTTPOnly(httpOnly bool) Option { return func(o *Options) { o.HttpOnly = httpOnly } }

// WithSameSite sets the SameSite mode.
func WithSameSite(sameSite http.SameSite) Option { return func(o *Options) { o.SameSite = sameSite } }

// with returns a copy of o with opts applied.
func (o Options) with(opts []Option) Options {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}

func (o Options) expired(name string) *http.Cookie {
	c := o.cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}
