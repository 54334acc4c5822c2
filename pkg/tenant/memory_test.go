package tenant_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

func strPtr(s string) *string { return &s }

func TestMemoryDirectory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create applies defaults and normalizes subdomain", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		created, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "Al Najah", Subdomain: " AlNajah "})
		require.NoError(t, err)
		assert.Equal(t, "1", created.ID)
		assert.Equal(t, "alnajah", created.Subdomain)
		assert.Equal(t, tenant.DefaultPrimaryColor, created.PrimaryColor)
		assert.Equal(t, tenant.DefaultSecondaryColor, created.SecondaryColor)
		assert.False(t, created.CreatedAt.IsZero())

		found, err := repo.FindBySubdomain(ctx, "ALNAJAH")
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("generates id when omitted", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		created, err := repo.Create(ctx, tenant.CreateInput{Name: "Acme", Subdomain: "acme"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "acme", byID.Subdomain)
	})

	t.Run("rejects duplicate subdomain", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		_, err := repo.Create(ctx, tenant.CreateInput{Name: "One", Subdomain: "acme"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, tenant.CreateInput{Name: "Two", Subdomain: "acme"})
		assert.ErrorIs(t, err, tenant.ErrSubdomainTaken)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		_, err := repo.Create(ctx, tenant.CreateInput{Name: "", Subdomain: "acme"})
		assert.ErrorIs(t, err, tenant.ErrNameRequired)
		_, err = repo.Create(ctx, tenant.CreateInput{Name: "Admin", Subdomain: "admin"})
		assert.ErrorIs(t, err, tenant.ErrReservedSubdomain)
		_, err = repo.Create(ctx, tenant.CreateInput{Name: "Bad", Subdomain: "bad_name"})
		assert.ErrorIs(t, err, tenant.ErrInvalidSubdomain)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		_, err := repo.FindBySubdomain(ctx, "nonexistent")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		_, err = repo.FindByID(ctx, "42")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		_, _, err = repo.Update(ctx, "42", tenant.UpdateInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		_, err = repo.Delete(ctx, "42")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("update renames subdomain", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "Old", Subdomain: "old"})
		require.NoError(t, err)

		before, updated, err := repo.Update(ctx, "1", tenant.UpdateInput{Subdomain: strPtr("new"), Name: strPtr("New")})
		require.NoError(t, err)
		assert.Equal(t, "old", before.Subdomain)
		assert.Equal(t, "Old", before.Name)
		assert.Equal(t, "new", updated.Subdomain)
		assert.Equal(t, "New", updated.Name)

		_, err = repo.FindBySubdomain(ctx, "old")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		found, err := repo.FindBySubdomain(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "1", found.ID)
	})

	t.Run("update to taken subdomain fails and keeps state", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, tenant.CreateInput{ID: "2", Name: "B", Subdomain: "b"})
		require.NoError(t, err)

		_, _, err = repo.Update(ctx, "2", tenant.UpdateInput{Subdomain: strPtr("a")})
		assert.ErrorIs(t, err, tenant.ErrSubdomainTaken)

		found, err := repo.FindBySubdomain(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "2", found.ID)
	})

	t.Run("duplicate explicit id", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "B", Subdomain: "b"})
		assert.ErrorIs(t, err, tenant.ErrTenantIDTaken)
		assert.NotErrorIs(t, err, tenant.ErrSubdomainTaken)

		_, err = repo.FindBySubdomain(ctx, "b")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("delete removes both indexes", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "a", deleted.Subdomain)

		_, err = repo.FindBySubdomain(ctx, "a")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		created, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
		require.NoError(t, err)
		created.Name = "mutated"

		found, err := repo.FindBySubdomain(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "A", found.Name)
	})

	t.Run("concurrent creates of same subdomain yield one winner", func(t *testing.T) {
		t.Parallel()
		repo := tenant.NewMemoryDirectory()

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.Create(ctx, tenant.CreateInput{Name: "Race", Subdomain: "race"}); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})
}

func TestCreateDerivesSubdomainFromName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := tenant.NewMemoryDirectory()

	created, err := dir.Create(ctx, tenant.CreateInput{Name: "Nova Clínica"})
	require.NoError(t, err)
	assert.Equal(t, "nova-clinica", created.Subdomain)

	_, err = dir.Create(ctx, tenant.CreateInput{Name: "Nova Clinica"})
	assert.ErrorIs(t, err, tenant.ErrSubdomainTaken)

	_, err = dir.Create(ctx, tenant.CreateInput{Name: "Admin"})
	assert.ErrorIs(t, err, tenant.ErrReservedSubdomain)

	_, err = dir.Create(ctx, tenant.CreateInput{Name: "شركة"})
	assert.ErrorIs(t, err, tenant.ErrInvalidSubdomain)
}
