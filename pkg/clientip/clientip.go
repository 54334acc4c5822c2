package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order before RemoteAddr. Only deploy behind
// a proxy that overwrites them.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// GetIP returns the normalized client address of r, or "" when nothing parses.
// X-Forwarded-For contributes its first valid entry.
func GetIP(r *http.Request) string {
	for _, name := range proxyHeaders {
		v := r.Header.Get(name)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
