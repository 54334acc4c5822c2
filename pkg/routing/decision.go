package routing

import (
	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

// Kind tags the variant of a Decision.
type Kind uint8

const (
	// KindPublic passes the request through untouched.
	KindPublic Kind = iota + 1
	// KindAdmin passes the request through as admin scope.
	KindAdmin
	// KindTenant serves the request for a resolved tenant at InternalPath.
	KindTenant
	// KindRedirect sends the client to Location.
	KindRedirect
	// KindNotFound means a tenant was requested but does not exist.
	KindNotFound
	// KindUnavailable means the directory could not answer.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindAdmin:
		return "admin"
	case KindTenant:
		return "tenant"
	case KindRedirect:
		return "redirect"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ReasonTenantNotFound is the Reason of every KindNotFound decision.
const ReasonTenantNotFound = "tenant not found"

// Candidate sources recorded in Diagnostics.
const (
	SourceHost     = "host"
	SourceExplicit = "explicit"
	SourceImplicit = "implicit"
	SourceAPI      = "api"
)

// Decision is the routing outcome for one request. Fields beyond Kind, Host
// and Path are set only for the kinds that use them.
type Decision struct {
	Kind Kind
	Host string
	Path string

	// InternalPath is the path the request is served at. Public and admin
	// decisions keep Path; tenant decisions point at the canonical tenant
	// route, except api paths which are never rewritten.
	InternalPath string

	// TenantID is the canonical subdomain of the resolved tenant.
	TenantID string
	Tenant   *tenant.Tenant

	// Location is the redirect target.
	Location string

	Reason string
	// Err is the directory failure behind KindUnavailable.
	Err error

	Diagnostics Diagnostics
}

// Rewritten reports whether the request must be served at a different path.
func (d Decision) Rewritten() bool {
	return d.Kind == KindTenant && d.InternalPath != d.Path
}

// Diagnostics explains how a decision was reached.
type Diagnostics struct {
	Environment   environment.Environment `json:"environment,omitempty"`
	HostSubdomain string                  `json:"host_subdomain,omitempty"`
	Scheme        Scheme                  `json:"scheme,omitempty"`
	Source        string                  `json:"source,omitempty"`
	Candidate     string                  `json:"candidate,omitempty"`
	Canonical     string                  `json:"canonical,omitempty"`
	AliasPrefix   string                  `json:"alias_prefix,omitempty"`
	Trace         []string                `json:"trace,omitempty"`
}

// Aliased reports whether the candidate had an alias prefix stripped.
func (d Diagnostics) Aliased() bool {
	return d.AliasPrefix != ""
}

func (d *Diagnostics) note(msg string) {
	d.Trace = append(d.Trace, msg)
}
