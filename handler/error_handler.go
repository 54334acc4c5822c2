package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tenantgate/pkg/binder"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
)

// NewErrorHandler creates the JSON error handler shared by all API modules.
// Binder failures become 400 or 415, HTTPError and ValidationError keep
// their status, anything else is a 500. Client errors are logged at warn
// level, server errors at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		err = classifyBindError(err)
		resp := JSONError(err).(*jsonResponse)

		level := slog.LevelWarn
		if resp.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", resp.status),
			slog.String("method", r.Method),
			logger.Path(r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}

func classifyBindError(err error) error {
	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return errors.Join(ErrUnsupportedMedia, err)
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParsePath), errors.Is(err, binder.ErrFailedToParseQuery):
		return errors.Join(ErrBadRequest, err)
	default:
		return err
	}
}
