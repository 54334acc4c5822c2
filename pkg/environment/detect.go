package environment

import (
	"net"
	"strings"
)

// LoopbackLabel is the host label that marks a development host.
const LoopbackLabel = "localhost"

// Hostname lowercases a Host header value and strips its port, brackets and trailing dot.
func Hostname(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if hostOnly, _, err := net.SplitHostPort(h); err == nil {
		h = hostOnly
	}
	h = strings.TrimPrefix(h, "[")
	h = strings.TrimSuffix(h, "]")
	return strings.TrimSuffix(h, ".")
}

// IsLoopbackHost reports whether a hostname, already passed through Hostname,
// points at the local machine: any label equal to localhost, a loopback IP
// literal, or a name ending in a 127.0.0.1 literal.
func IsLoopbackHost(hostname string) bool {
	if hostname == "" {
		return false
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback()
	}
	if strings.HasSuffix(hostname, ".127.0.0.1") {
		return true
	}
	for label := range strings.SplitSeq(hostname, ".") {
		if label == LoopbackLabel {
			return true
		}
	}
	return false
}

// Detect guesses the environment from the shape of a Host header.
// Loopback hosts are development, everything else is production.
// It is a fallback for deployments that do not set the environment explicitly.
func Detect(host string) Environment {
	if IsLoopbackHost(Hostname(host)) {
		return Development
	}
	return Production
}

// Resolve returns the explicitly configured environment when set,
// otherwise the one detected from host.
func Resolve(configured Environment, host string) Environment {
	if configured != "" {
		return configured
	}
	return Detect(host)
}
