package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantgate/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newBucket(t *testing.T, c *clock, capacity int) (*ratelimiter.Bucket, *ratelimiter.MemoryStore) {
	t.Helper()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(0),
		ratelimiter.WithClock(c.Now),
	)
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       capacity,
		RefillRate:     1,
		RefillInterval: time.Second,
	})
	require.NoError(t, err)
	return b, store
}

func TestNewBucketValidatesConfig(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.NewBucket(store, cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
}

func TestBucketAllow(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Unix(1_700_000_000, 0)}
	b, _ := newBucket(t, c, 3)
	ctx := t.Context()

	for i := range 3 {
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 2-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, time.Second, res.RetryAfter(c.Now()))

	t.Run("other keys are independent", func(t *testing.T) {
		res, err := b.Allow(ctx, "other")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("refill after interval", func(t *testing.T) {
		c.Advance(time.Second)
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		require.NoError(t, b.Reset(ctx, "k"))
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})
}

func TestBucketAllowNRejectsNonPositive(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, &clock{now: time.Now()}, 1)
	_, err := b.AllowN(t.Context(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestDeniedRequestsDoNotDrain(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Unix(1_700_000_000, 0)}
	b, _ := newBucket(t, c, 1)
	ctx := t.Context()

	_, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	for range 5 {
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
	}

	c.Advance(time.Second)
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestConcurrentAllow(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, &clock{now: time.Unix(1_700_000_000, 0)}, 50)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(t.Context(), "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	fixed := func(s string) ratelimiter.KeyFunc {
		return func(*http.Request) string { return s }
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "alnajah:10.0.0.1", ratelimiter.Composite(fixed("alnajah"), fixed(""), fixed("10.0.0.1"))(r))
	assert.Empty(t, ratelimiter.Composite(fixed(""))(r))

	long := ratelimiter.Composite(fixed(string(make([]byte, 80))))(r)
	assert.NotEmpty(t, long)
	assert.LessOrEqual(t, len(long), 64)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, &clock{now: time.Now()}, 1)
	h := ratelimiter.Middleware(b, ratelimiter.ByIP(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	first := send("10.0.0.1:1")
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send("10.0.0.1:2")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "too_many_requests")
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:1").Code)
}

func TestMemoryStoreLen(t *testing.T) {
	t.Parallel()

	b, store := newBucket(t, &clock{now: time.Now()}, 2)
	_, _ = b.Allow(t.Context(), "a")
	_, _ = b.Allow(t.Context(), "b")
	assert.Equal(t, 2, store.Len())
}
