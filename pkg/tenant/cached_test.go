package tenant_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

type countingRepo struct {
	*tenant.MemoryDirectory
	lookups atomic.Int32
	gate    chan struct{}
	err     error
}

func (r *countingRepo) FindBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	r.lookups.Add(1)
	if r.gate != nil {
		<-r.gate
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.MemoryDirectory.FindBySubdomain(ctx, subdomain)
}

func newCached(t *testing.T, repo tenant.Repository) *tenant.CachedDirectory {
	t.Helper()
	dir, err := tenant.NewCachedDirectory(repo, tenant.CacheConfig{TTL: time.Minute, MaxEntries: 100})
	require.NoError(t, err)
	t.Cleanup(dir.Close)
	return dir
}

func TestCachedDirectory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hits are served from cache", func(t *testing.T) {
		t.Parallel()
		repo := &countingRepo{MemoryDirectory: tenant.NewMemoryDirectory()}
		_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "Al Najah", Subdomain: "alnajah"})
		require.NoError(t, err)
		dir := newCached(t, repo)

		for range 5 {
			got, err := dir.FindBySubdomain(ctx, "alnajah")
			require.NoError(t, err)
			assert.Equal(t, "1", got.ID)
		}
		assert.Equal(t, int32(1), repo.lookups.Load())
	})

	t.Run("misses are not cached", func(t *testing.T) {
		t.Parallel()
		repo := &countingRepo{MemoryDirectory: tenant.NewMemoryDirectory()}
		dir := newCached(t, repo)

		_, err := dir.FindBySubdomain(ctx, "ghost")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)

		_, err = dir.Create(ctx, tenant.CreateInput{ID: "9", Name: "Ghost", Subdomain: "ghost"})
		require.NoError(t, err)

		got, err := dir.FindBySubdomain(ctx, "ghost")
		require.NoError(t, err)
		assert.Equal(t, "9", got.ID)
	})

	t.Run("backend errors propagate", func(t *testing.T) {
		t.Parallel()
		boom := errors.Join(tenant.ErrUnavailable, errors.New("connection refused"))
		repo := &countingRepo{MemoryDirectory: tenant.NewMemoryDirectory(), err: boom}
		dir := newCached(t, repo)

		_, err := dir.FindBySubdomain(ctx, "alnajah")
		assert.ErrorIs(t, err, tenant.ErrUnavailable)
	})

	t.Run("rename invalidates old and new keys", func(t *testing.T) {
		t.Parallel()
		repo := &countingRepo{MemoryDirectory: tenant.NewMemoryDirectory()}
		_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "Old", Subdomain: "old"})
		require.NoError(t, err)
		dir := newCached(t, repo)

		_, err = dir.FindBySubdomain(ctx, "old")
		require.NoError(t, err)

		_, _, err = dir.Update(ctx, "1", tenant.UpdateInput{Subdomain: strPtr("new")})
		require.NoError(t, err)

		_, err = dir.FindBySubdomain(ctx, "old")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		got, err := dir.FindBySubdomain(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "1", got.ID)
	})

	t.Run("delete invalidates", func(t *testing.T) {
		t.Parallel()
		repo := &countingRepo{MemoryDirectory: tenant.NewMemoryDirectory()}
		_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
		require.NoError(t, err)
		dir := newCached(t, repo)

		_, err = dir.FindBySubdomain(ctx, "a")
		require.NoError(t, err)
		_, err = dir.Delete(ctx, "1")
		require.NoError(t, err)

		_, err = dir.FindBySubdomain(ctx, "a")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("concurrent lookups share one backend call", func(t *testing.T) {
		t.Parallel()
		repo := &countingRepo{MemoryDirectory: tenant.NewMemoryDirectory(), gate: make(chan struct{})}
		_, err := repo.MemoryDirectory.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
		require.NoError(t, err)
		dir := newCached(t, repo)

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := dir.FindBySubdomain(ctx, "a")
				assert.NoError(t, err)
				if got != nil {
					assert.Equal(t, "1", got.ID)
				}
			}()
		}

		require.Eventually(t, func() bool { return repo.lookups.Load() >= 1 }, time.Second, time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		close(repo.gate)
		wg.Wait()

		assert.LessOrEqual(t, repo.lookups.Load(), int32(10))
		assert.GreaterOrEqual(t, repo.lookups.Load(), int32(1))
	})
}

type detachedRepo struct {
	*tenant.MemoryDirectory
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	ctxErr  atomic.Value
}

func (r *detachedRepo) FindBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	r.once.Do(func() { close(r.entered) })
	<-r.release
	if err := ctx.Err(); err != nil {
		r.ctxErr.Store(err)
		return nil, err
	}
	return r.MemoryDirectory.FindBySubdomain(ctx, subdomain)
}

func TestCachedDirectoryCancelledCaller(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &detachedRepo{
		MemoryDirectory: tenant.NewMemoryDirectory(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	_, err := repo.MemoryDirectory.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
	require.NoError(t, err)
	dir := newCached(t, repo)

	first, cancel := context.WithCancel(ctx)
	firstErr := make(chan error, 1)
	go func() {
		_, err := dir.FindBySubdomain(first, "a")
		firstErr <- err
	}()
	<-repo.entered
	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	type result struct {
		t   *tenant.Tenant
		err error
	}
	second := make(chan result, 1)
	go func() {
		got, err := dir.FindBySubdomain(ctx, "a")
		second <- result{got, err}
	}()
	time.Sleep(20 * time.Millisecond)
	close(repo.release)

	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "1", res.t.ID)
	assert.Nil(t, repo.ctxErr.Load(), "backend saw the first caller's cancellation")
}

func TestCachedDirectoryConcurrentRenames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := tenant.NewMemoryDirectory()
	_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
	require.NoError(t, err)
	dir := newCached(t, repo)

	names := []string{"a", "b", "c", "d"}
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				name := names[(i+j)%len(names)]
				_, _, _ = dir.Update(ctx, "1", tenant.UpdateInput{Subdomain: &name})
				_, _ = dir.FindBySubdomain(ctx, names[(i+j+1)%len(names)])
			}
		}()
	}
	wg.Wait()

	current, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	for _, name := range names {
		got, err := dir.FindBySubdomain(ctx, name)
		if name == current.Subdomain {
			require.NoError(t, err)
			assert.Equal(t, "1", got.ID)
			continue
		}
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound, "stale entry for %q", name)
	}
}

func TestCachedDirectorySharedRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := tenant.NewMemoryDirectory()
	_, err := repo.Create(ctx, tenant.CreateInput{ID: "1", Name: "A", Subdomain: "a"})
	require.NoError(t, err)

	cfg := tenant.CacheConfig{TTL: time.Hour, SharedTTL: 50 * time.Millisecond, MaxEntries: 100}.Shared()
	a := newCachedWith(t, repo, cfg)
	b := newCachedWith(t, repo, cfg)

	for _, dir := range []*tenant.CachedDirectory{a, b} {
		_, err := dir.FindBySubdomain(ctx, "a")
		require.NoError(t, err)
	}

	_, err = a.Delete(ctx, "1")
	require.NoError(t, err)

	_, err = a.FindBySubdomain(ctx, "a")
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	require.Eventually(t, func() bool {
		_, err := b.FindBySubdomain(ctx, "a")
		return errors.Is(err, tenant.ErrTenantNotFound)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCacheConfigShared(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   tenant.CacheConfig
		want time.Duration
	}{
		{"caps long ttl", tenant.CacheConfig{TTL: 5 * time.Minute, SharedTTL: 5 * time.Second}, 5 * time.Second},
		{"keeps shorter ttl", tenant.CacheConfig{TTL: time.Second, SharedTTL: 5 * time.Second}, time.Second},
		{"fills unset ttl", tenant.CacheConfig{SharedTTL: 5 * time.Second}, 5 * time.Second},
		{"no cap configured", tenant.CacheConfig{TTL: time.Minute}, time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Shared().TTL)
		})
	}
}

func newCachedWith(t *testing.T, repo tenant.Repository, cfg tenant.CacheConfig) *tenant.CachedDirectory {
	t.Helper()
	dir, err := tenant.NewCachedDirectory(repo, cfg)
	require.NoError(t, err)
	t.Cleanup(dir.Close)
	return dir
}
