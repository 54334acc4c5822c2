// Package redis connects go-redis clients with retries and exposes a
// readiness probe. The session package stores sessions through the client.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client, session.DefaultRedisPrefix)
package redis
