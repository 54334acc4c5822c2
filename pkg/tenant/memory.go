package tenant

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDirectory is a Repository kept in process memory.
// It is safe for concurrent use.
type MemoryDirectory struct {
	mu          sync.RWMutex
	byID        map[string]*Tenant
	bySubdomain map[string]string
	now         func() time.Time
}

// NewMemoryDirectory creates an empty in-memory repository.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		byID:        make(map[string]*Tenant),
		bySubdomain: make(map[string]string),
		now:         time.Now,
	}
}

func (d *MemoryDirectory) FindBySubdomain(_ context.Context, subdomain string) (*Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.bySubdomain[NormalizeSubdomain(subdomain)]
	if !ok {
		return nil, ErrTenantNotFound
	}
	t := *d.byID[id]
	return &t, nil
}

func (d *MemoryDirectory) FindByID(_ context.Context, id string) (*Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.byID[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

// List returns tenants ordered by creation time, then ID.
func (d *MemoryDirectory) List(_ context.Context) ([]Tenant, error) {
	d.mu.RLock()
	out := make([]Tenant, 0, len(d.byID))
	for _, t := range d.byID {
		out = append(out, *t)
	}
	d.mu.RUnlock()

	slices.SortFunc(out, func(a, b Tenant) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (d *MemoryDirectory) Create(_ context.Context, in CreateInput) (*Tenant, error) {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	t, err := in.build(id, d.now())
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byID[t.ID]; ok {
		return nil, ErrTenantIDTaken
	}
	if _, ok := d.bySubdomain[t.Subdomain]; ok {
		return nil, ErrSubdomainTaken
	}
	d.byID[t.ID] = t
	d.bySubdomain[t.Subdomain] = t.ID

	cp := *t
	return &cp, nil
}

func (d *MemoryDirectory) Update(_ context.Context, id string, in UpdateInput) (*Tenant, *Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.byID[id]
	if !ok {
		return nil, nil, ErrTenantNotFound
	}
	updated, err := in.apply(*current, d.now())
	if err != nil {
		return nil, nil, err
	}
	if updated.Subdomain != current.Subdomain {
		if _, taken := d.bySubdomain[updated.Subdomain]; taken {
			return nil, nil, ErrSubdomainTaken
		}
		delete(d.bySubdomain, current.Subdomain)
		d.bySubdomain[updated.Subdomain] = id
	}
	d.byID[id] = updated

	before, after := *current, *updated
	return &before, &after, nil
}

func (d *MemoryDirectory) Delete(_ context.Context, id string) (*Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.byID[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	delete(d.byID, id)
	delete(d.bySubdomain, t.Subdomain)
	return t, nil
}
