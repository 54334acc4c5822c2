package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "session"

const scanBatch = 100

// RedisStore keeps sessions in Redis under {prefix}:{scope}:{token} with a
// TTL matching the session expiry.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store on client. An empty prefix uses DefaultRedisPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) key(scopeKey, token string) string {
	return s.prefix + ":" + scopeKey + ":" + token
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" || sess.ScopeKey == "" {
		return ErrInvalidSession
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrInvalidSession
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}
	if err := s.client.Set(ctx, s.key(sess.ScopeKey, sess.Token), data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, scopeKey, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(scopeKey, token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, ErrSessionNotFound
	}
	if sess.ScopeKey != scopeKey || sess.IsExpired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, scopeKey, token string) error {
	if err := s.client.Del(ctx, s.key(scopeKey, token)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteScope scans the scope's key space and removes it in batches.
func (s *RedisStore) DeleteScope(ctx context.Context, scopeKey string) error {
	if err := ValidateScopeKey(scopeKey); err != nil {
		return err
	}
	iter := s.client.Scan(ctx, 0, s.key(scopeKey, "*"), scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return errors.Join(ErrStoreUnavailable, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return errors.Join(ErrStoreUnavailable, err)
		}
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires keys by TTL.
func (s *RedisStore) DeleteExpired(context.Context) error {
	return nil
}
