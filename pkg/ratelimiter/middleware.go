package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/clientip"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
)

// maxKeyLength bounds storage keys. Longer composites are hashed.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// ByIP keys requests by client address.
func ByIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.GetIPFromContext(r.Context()); ip != "" {
			return ip
		}
		return clientip.GetIP(r)
	}
}

// Composite joins the non-empty keys of several key functions with ':'.
// Keys longer than 64 bytes are replaced by their FNV-1a hash.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// Middleware rejects requests over the limit with 429 and the standard
// X-RateLimit headers. Store failures answer 503.
func Middleware(b *Bucket, keyFunc KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			result, err := b.Allow(r.Context(), key)
			if err != nil {
				log.ErrorContext(r.Context(), "rate limit check failed",
					logger.Error(err),
					logger.Component("ratelimiter"),
				)
				_ = handler.JSONError(handler.ErrServiceUnavailable).Render(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if retry := int(result.RetryAfter(time.Now()).Seconds()); retry > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retry))
				}
				log.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("key", key),
					logger.Component("ratelimiter"),
				)
				_ = handler.JSONError(handler.ErrTooManyRequests).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
