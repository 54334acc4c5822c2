package tenant

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"
)

// CacheConfig controls the lookup cache in front of a Repository.
type CacheConfig struct {
	TTL        time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	MaxEntries int64         `env:"TENANT_CACHE_MAX_ENTRIES" envDefault:"10000"`
	// SharedTTL caps TTL when the repository is shared between processes.
	// Writes made by another process are only seen once entries expire.
	SharedTTL time.Duration `env:"TENANT_CACHE_SHARED_TTL" envDefault:"5s"`
}

// Shared returns the config to use over a repository other processes write to.
func (c CacheConfig) Shared() CacheConfig {
	if c.SharedTTL > 0 && (c.TTL <= 0 || c.TTL > c.SharedTTL) {
		c.TTL = c.SharedTTL
	}
	return c
}

// CachedDirectory caches successful subdomain lookups of another Repository.
// Misses are never cached, and concurrent lookups for the same subdomain share
// one backend call that outlives the caller that started it. Writes made
// through it invalidate affected entries, and lookups that started before a
// write never repopulate the cache. Writes made elsewhere become visible when
// entries expire; see CacheConfig.Shared.
type CachedDirectory struct {
	next  Repository
	cache *ristretto.Cache[string, Tenant]
	ttl   time.Duration
	group singleflight.Group

	mu  sync.Mutex
	gen atomic.Uint64
}

// NewCachedDirectory wraps next with an in-process cache.
func NewCachedDirectory(next Repository, cfg CacheConfig) (*CachedDirectory, error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10000
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, Tenant]{
		NumCounters: cfg.MaxEntries * 10,
		MaxCost:     cfg.MaxEntries,
		BufferItems: 64,
		// Cost counts entries, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &CachedDirectory{next: next, cache: c, ttl: cfg.TTL}, nil
}

func (d *CachedDirectory) FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	key := NormalizeSubdomain(subdomain)
	if t, ok := d.cache.Get(key); ok {
		return &t, nil
	}

	gen := d.gen.Load()
	detached := context.WithoutCancel(ctx)
	ch := d.group.DoChan(strconv.FormatUint(gen, 10)+":"+key, func() (any, error) {
		t, err := d.next.FindBySubdomain(detached, key)
		if err != nil {
			return nil, err
		}
		d.fill(gen, key, *t)
		return *t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		t := res.Val.(Tenant)
		return &t, nil
	}
}

func (d *CachedDirectory) FindByID(ctx context.Context, id string) (*Tenant, error) {
	return d.next.FindByID(ctx, id)
}

func (d *CachedDirectory) List(ctx context.Context) ([]Tenant, error) {
	return d.next.List(ctx)
}

func (d *CachedDirectory) Create(ctx context.Context, in CreateInput) (*Tenant, error) {
	t, err := d.next.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	d.invalidate(t.Subdomain)
	return t, nil
}

func (d *CachedDirectory) Update(ctx context.Context, id string, in UpdateInput) (*Tenant, *Tenant, error) {
	before, after, err := d.next.Update(ctx, id, in)
	if err != nil {
		return nil, nil, err
	}
	d.invalidate(before.Subdomain, after.Subdomain)
	return before, after, nil
}

func (d *CachedDirectory) Delete(ctx context.Context, id string) (*Tenant, error) {
	t, err := d.next.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	d.invalidate(t.Subdomain)
	return t, nil
}

// Invalidate drops cached entries for the given subdomains.
// Use it when the backing store is modified behind this cache.
func (d *CachedDirectory) Invalidate(subdomains ...string) {
	d.invalidate(subdomains...)
}

// Close releases the cache.
func (d *CachedDirectory) Close() {
	d.cache.Close()
}

func (d *CachedDirectory) fill(gen uint64, key string, t Tenant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen.Load() != gen {
		return
	}
	d.cache.SetWithTTL(key, t, 1, d.ttl)
	d.cache.Wait()
}

func (d *CachedDirectory) invalidate(subdomains ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen.Add(1)
	for _, s := range subdomains {
		d.cache.Del(NormalizeSubdomain(s))
	}
	d.cache.Wait()
}
