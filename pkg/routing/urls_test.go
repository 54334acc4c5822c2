package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
)

func TestTenantPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/tenant/almajd/dashboard", routing.TenantPath("almajd", ""))
	assert.Equal(t, "/tenant/almajd/reports/2024", routing.TenantPath("almajd", "/reports/2024"))
}

func TestTenantURL(t *testing.T) {
	t.Parallel()

	t.Run("development uses path scheme", func(t *testing.T) {
		t.Parallel()
		got := routing.TenantURL(environment.Development, "almajd", "dashboard", "yourapp.com", "localhost:3000")
		assert.Equal(t, "http://localhost:3000/tenant/almajd/dashboard", got)
	})

	t.Run("production uses subdomain", func(t *testing.T) {
		t.Parallel()
		got := routing.TenantURL(environment.Production, "alnajah", "", "yourapp.com", "localhost:3000")
		assert.Equal(t, "https://alnajah.yourapp.com/dashboard", got)
	})

	t.Run("round trips through the router", func(t *testing.T) {
		t.Parallel()
		path := routing.TenantPath("almajd", "settings")
		rt := routing.New(newDirectory(t, "almajd"))
		d := rt.Route(t.Context(), "localhost:3000", path)
		assert.Equal(t, routing.KindTenant, d.Kind)
		assert.Equal(t, "/almajd/settings", d.InternalPath)
	})
}
