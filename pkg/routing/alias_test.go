package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantgate/pkg/routing"
)

func TestAliasResolver(t *testing.T) {
	t.Parallel()

	t.Run("strips registered prefix", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver("direct-access-")
		canonical, prefix := r.Match("direct-access-clinr")
		assert.Equal(t, "clinr", canonical)
		assert.Equal(t, "direct-access-", prefix)
	})

	t.Run("unknown prefix is returned unchanged", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver("direct-access-")
		assert.Equal(t, "alnajah", r.Resolve("alnajah"))
	})

	t.Run("prefix match ignores case", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver("Direct-Access-")
		assert.Equal(t, "clinr", r.Resolve("DIRECT-ACCESS-clinr"))
	})

	t.Run("prefix alone is not stripped", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver("direct-access-")
		assert.Equal(t, "direct-access-", r.Resolve("direct-access-"))
	})

	t.Run("first registered prefix wins", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver("go-", "go-direct-")
		canonical, prefix := r.Match("go-direct-clinr")
		assert.Equal(t, "direct-clinr", canonical)
		assert.Equal(t, "go-", prefix)

		r = routing.NewAliasResolver("go-direct-", "go-")
		assert.Equal(t, "clinr", r.Resolve("go-direct-clinr"))
	})

	t.Run("prefixes are deduplicated in order", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver("b-", "", "a-", "B-", " a- ")
		assert.Equal(t, []string{"b-", "a-"}, r.Prefixes())
	})

	t.Run("resolve is idempotent", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver("direct-access-", "x-")
		inputs := []string{
			"clinr",
			"direct-access-clinr",
			"direct-access-direct-access-clinr",
			"direct-access-x-clinr",
			"x-direct-access-clinr",
			"x-x-",
			"x-",
			"",
			"DIRECT-ACCESS-Clinr",
		}
		for _, in := range inputs {
			once := r.Resolve(in)
			assert.Equal(t, once, r.Resolve(once), "input %q", in)
		}
	})

	t.Run("no prefixes", func(t *testing.T) {
		t.Parallel()
		r := routing.NewAliasResolver()
		assert.Empty(t, r.Prefixes())
		assert.Equal(t, "direct-access-clinr", r.Resolve("direct-access-clinr"))
	})
}
