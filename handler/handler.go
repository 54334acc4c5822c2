package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/tenantgate/pkg/binder"
)

// HandlerFunc handles a request already decoded into R.
//
//	func (s *Service) tenantLogin(ctx handler.Context, req LoginRequest) handler.Response {
//		d, _ := routing.DecisionFromContext(ctx)
//		...
//	}
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response writes status, headers and body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes part of a request into v. A binder that has nothing to read
// returns binder.ErrBinderNotApplicable and is skipped.
type Bind func(r *http.Request, v any) error

// ErrorHandler renders binding and rendering failures.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc. The first decorator passed to Wrap runs first.
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapped[C, R])

type wrapped[C Context, R any] struct {
	handle     HandlerFunc[C, R]
	binders    []Bind
	decorators []Decorator[C, R]
	onError    ErrorHandler[C]
	newContext func(http.ResponseWriter, *http.Request) C
}

// WithBinders appends request binders, applied in order:
//
//	handler.WithBinders[handler.Context, updateRequest](binder.Path(chi.URLParam), binder.JSON())
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(w *wrapped[C, R]) { w.binders = append(w.binders, binders...) }
}

// WithErrorHandler replaces the JSON error renderer. Nil is ignored.
func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(w *wrapped[C, R]) {
		if h != nil {
			w.onError = h
		}
	}
}

// WithContextFactory builds a custom C per request. It is required when C is
// not handler.Context. Nil is ignored.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(w *wrapped[C, R]) {
		if f != nil {
			w.newContext = f
		}
	}
}

// WithDecorators appends decorators.
func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(w *wrapped[C, R]) { w.decorators = append(w.decorators, decorators...) }
}

// Wrap turns a typed handler into an http.HandlerFunc:
//
//	r.Post("/login", handler.Wrap(s.tenantLogin,
//		handler.WithBinders[handler.Context, LoginRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](s.errorHandler),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	w := &wrapped[C, R]{
		handle:     h,
		onError:    func(ctx C, err error) { _ = JSONError(err).Render(ctx.ResponseWriter(), ctx.Request()) },
		newContext: defaultContext[C],
	}
	for _, opt := range opts {
		opt(w)
	}
	w.handle = w.chain()
	return w.serve
}

func defaultContext[C Context](w http.ResponseWriter, r *http.Request) C {
	c, ok := NewContext(w, r).(C)
	if !ok {
		panic("handler: custom context type needs WithContextFactory")
	}
	return c
}

func (w *wrapped[C, R]) chain() HandlerFunc[C, R] {
	h := w.handle
	for i := len(w.decorators) - 1; i >= 0; i-- {
		h = w.decorators[i](h)
	}
	return h
}

func (w *wrapped[C, R]) bind(r *http.Request) (R, error) {
	var req R
	for _, b := range w.binders {
		if err := b(r, &req); err != nil && !errors.Is(err, binder.ErrBinderNotApplicable) {
			return req, err
		}
	}
	return req, nil
}

func (w *wrapped[C, R]) serve(rw http.ResponseWriter, r *http.Request) {
	ctx := w.newContext(rw, r)

	req, err := w.bind(r)
	if err != nil {
		w.onError(ctx, err)
		return
	}

	resp := w.handle(ctx, req)
	if resp == nil {
		w.onError(ctx, ErrNilResponse)
		return
	}
	if err := resp.Render(rw, r); err != nil {
		w.onError(ctx, err)
	}
}
