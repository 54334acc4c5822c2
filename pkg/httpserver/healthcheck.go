package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
)

// Check is a named readiness probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// LivenessHandler always answers 200 with {"data":{"status":"alive"}}.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSON(map[string]string{"status": "alive"}).Render(w, r)
	}
}

// ReadinessHandler runs every check with timeout each and answers 200 when
// all pass, 503 otherwise. The body maps check names to "ok" or "failed".
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		results := make(map[string]string, len(checks))
		status := http.StatusOK
		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			err := c.Fn(ctx)
			cancel()
			if err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					slog.String("check", c.Name),
					logger.Error(err),
				)
				results[c.Name] = "failed"
				status = http.StatusServiceUnavailable
				continue
			}
			results[c.Name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		_ = handler.JSON(map[string]any{
			"status": state,
			"checks": results,
		}, handler.WithJSONStatus(status)).Render(w, r)
	}
}
