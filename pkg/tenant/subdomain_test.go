package tenant_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

func TestValidateSubdomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "alnajah"},
		{name: "digits and hyphen", input: "acme-2"},
		{name: "single character", input: "a"},
		{name: "max length", input: strings.Repeat("a", tenant.MaxSubdomainLength)},
		{name: "empty", input: "", wantErr: tenant.ErrInvalidSubdomain},
		{name: "too long", input: strings.Repeat("a", tenant.MaxSubdomainLength+1), wantErr: tenant.ErrInvalidSubdomain},
		{name: "leading hyphen", input: "-acme", wantErr: tenant.ErrInvalidSubdomain},
		{name: "uppercase", input: "Acme", wantErr: tenant.ErrInvalidSubdomain},
		{name: "underscore", input: "ac_me", wantErr: tenant.ErrInvalidSubdomain},
		{name: "dot", input: "ac.me", wantErr: tenant.ErrInvalidSubdomain},
		{name: "reserved admin", input: "admin", wantErr: tenant.ErrReservedSubdomain},
		{name: "reserved www", input: "www", wantErr: tenant.ErrReservedSubdomain},
		{name: "reserved api", input: "api", wantErr: tenant.ErrReservedSubdomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tenant.ValidateSubdomain(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeSubdomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "almajd", tenant.NormalizeSubdomain("  AlMajd "))
	assert.True(t, tenant.IsValidIdentifier("admin"))
	assert.True(t, tenant.IsReservedSubdomain("ADMIN"))
	assert.False(t, tenant.IsReservedSubdomain("alnajah"))
}

func TestSubdomainFromName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "words", input: "Alnajah Company", want: "alnajah-company"},
		{name: "accents", input: "Café Résumé", want: "cafe-resume"},
		{name: "punctuation runs", input: "  Almajd -- Corp.  ", want: "almajd-corp"},
		{name: "digits", input: "Clinic 24/7", want: "clinic-24-7"},
		{name: "no latin letters", input: "شركة", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tenant.SubdomainFromName(tt.input))
		})
	}

	t.Run("capped at label length", func(t *testing.T) {
		t.Parallel()
		got := tenant.SubdomainFromName(strings.Repeat("ab ", 40))
		assert.LessOrEqual(t, len(got), tenant.MaxSubdomainLength)
		assert.True(t, tenant.IsValidIdentifier(got), got)
		assert.False(t, strings.HasSuffix(got, "-"))
	})
}
