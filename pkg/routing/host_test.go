package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantgate/pkg/routing"
)

func TestParseHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		host      string
		subdomain string
		loopback  bool
	}{
		{"bare localhost", "localhost:3000", "", true},
		{"localhost subdomain", "alnajah.localhost:3000", "alnajah", true},
		{"uppercase localhost subdomain", "AlNajah.LocalHost:3000", "alnajah", true},
		{"nested localhost label", "localhost.localhost", "", true},
		{"loopback ip", "127.0.0.1:3000", "", true},
		{"ipv6 loopback", "[::1]:3000", "", true},
		{"name over loopback ip", "almajd.127.0.0.1", "almajd", true},
		{"apex domain", "yourapp.com", "", false},
		{"www", "www.yourapp.com", "", false},
		{"production subdomain", "alnajah.yourapp.com", "alnajah", false},
		{"trailing dot", "alnajah.yourapp.com.", "alnajah", false},
		{"production with port", "alnajah.yourapp.com:8443", "alnajah", false},
		{"public ip", "203.0.113.7", "", false},
		{"empty", "", "", false},
		{"empty label", "alnajah..yourapp.com", "", false},
		{"leading dot", ".yourapp.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := routing.ParseHost(tt.host)
			assert.Equal(t, tt.subdomain, info.Subdomain)
			assert.Equal(t, tt.loopback, info.Loopback)
		})
	}
}
