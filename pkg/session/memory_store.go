package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory, one bucket per scope.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string]Session
	now     func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates an in-memory store. A positive cleanupInterval
// starts a goroutine that drops expired sessions; stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		buckets: make(map[string]map[string]Session),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		go s.cleanupLoop()
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" || sess.ScopeKey == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[sess.ScopeKey]
	if !ok {
		bucket = make(map[string]Session)
		s.buckets[sess.ScopeKey] = bucket
	}
	bucket[sess.Token] = *sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, scopeKey, token string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.buckets[scopeKey][token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.IsExpired(s.now()) {
		s.mu.Lock()
		delete(s.buckets[scopeKey], token)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, scopeKey, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets[scopeKey], token)
	return nil
}

func (s *MemoryStore) DeleteScope(_ context.Context, scopeKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets, scopeKey)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, bucket := range s.buckets {
		for token, sess := range bucket {
			if sess.IsExpired(now) {
				delete(bucket, token)
			}
		}
		if len(bucket) == 0 {
			delete(s.buckets, key)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			_ = s.DeleteExpired(context.Background())
		case <-s.done:
			return
		}
	}
}
