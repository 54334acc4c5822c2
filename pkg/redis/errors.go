package redis

import "errors"

// Errors returned while connecting the session store backend.
var (
	ErrEmptyConnectionURL           = errors.New("redis: REDIS_URL is empty")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection url")
	ErrRedisNotReady                = errors.New("redis: not ready after all retry attempts")
	ErrHealthcheckFailed            = errors.New("redis: ping failed")
)
