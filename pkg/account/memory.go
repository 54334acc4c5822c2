package account

import (
	"cmp"
	"context"
	"net/mail"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenantgate/pkg/session"
)

// MemoryRepository is a Repository kept in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
	cost    int
	now     func() time.Time
}

// NewMemoryRepository creates an empty repository hashing passwords at cost.
// A cost of 0 uses bcrypt.DefaultCost.
func NewMemoryRepository(cost int) *MemoryRepository {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &MemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
		cost:    cost,
		now:     time.Now,
	}
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// ListByTenant returns the members of a tenant ordered by email.
func (r *MemoryRepository) ListByTenant(_ context.Context, tenantID string) ([]User, error) {
	r.mu.RLock()
	var out []User
	for _, u := range r.byID {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b User) int { return cmp.Compare(a.Email, b.Email) })
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, in CreateInput) (*User, error) {
	email := NormalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, ErrInvalidEmail
	}
	switch in.Role {
	case session.RoleSuperAdmin, session.RoleAdmin, session.RoleUser:
	default:
		return nil, ErrInvalidRole
	}
	hash, err := HashPassword(in.Password, r.cost)
	if err != nil {
		return nil, err
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}
	if _, ok := r.byID[id]; ok {
		return nil, ErrEmailTaken
	}
	u := &User{
		ID:           id,
		Email:        email,
		Name:         in.Name,
		Role:         in.Role,
		TenantID:     in.TenantID,
		PasswordHash: hash,
		CreatedAt:    r.now(),
	}
	r.byID[id] = u
	r.byEmail[email] = id
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) DeleteByTenant(_ context.Context, tenantID string) (int, error) {
	if tenantID == "" {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, u := range r.byID {
		if u.TenantID == tenantID {
			delete(r.byID, id)
			delete(r.byEmail, u.Email)
			n++
		}
	}
	return n, nil
}
