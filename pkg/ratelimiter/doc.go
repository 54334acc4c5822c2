// Package ratelimiter implements a token bucket limiter with an in-memory
// store and an HTTP middleware.
//
// It throttles credential endpoints per client address and scope:
//
//	store := ratelimiter.NewMemoryStore()
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 30 * time.Second,
//	})
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByIP(), log)).Post("/login", login)
//
// Each bucket starts full. Every allowed request takes one token and
// RefillRate tokens come back every RefillInterval, up to Capacity.
// A denied request leaves the bucket untouched.
package ratelimiter
