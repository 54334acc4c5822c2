package routing

import (
	"net"
	"slices"
	"strings"

	"github.com/dmitrymomot/tenantgate/pkg/environment"
)

// HostInfo is what the Host header says about the request target.
type HostInfo struct {
	// Hostname is lowercased with port and trailing dot removed.
	Hostname string
	// Loopback is set when the host carries the development marker.
	Loopback bool
	// Subdomain is the candidate tenant label, or "" when the host carries none.
	Subdomain string
}

// ParseHost extracts a candidate tenant subdomain from a Host header value.
//
// Loopback hosts need at least two labels and yield the first one unless it
// is the loopback label itself: alnajah.localhost:3000 gives "alnajah",
// localhost:3000 gives nothing. Other hosts need more than two labels and
// yield the first one unless it is www: alnajah.yourapp.com gives "alnajah",
// yourapp.com and www.yourapp.com give nothing. IP literals, empty and
// malformed values never carry a subdomain.
func ParseHost(host string) HostInfo {
	name := environment.Hostname(host)
	info := HostInfo{Hostname: name, Loopback: environment.IsLoopbackHost(name)}
	if name == "" || net.ParseIP(name) != nil {
		return info
	}

	labels := strings.Split(name, ".")
	if slices.Contains(labels, "") {
		return info
	}

	first := labels[0]
	if info.Loopback {
		if len(labels) >= 2 && first != environment.LoopbackLabel {
			info.Subdomain = first
		}
		return info
	}
	if len(labels) > 2 && first != "www" {
		info.Subdomain = first
	}
	return info
}
