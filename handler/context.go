package handler

import (
	"context"
	"net/http"
)

// Context is what typed handlers receive. It is the request context itself,
// so the routing decision, tenant and principal placed there by middleware
// are reachable through the usual package helpers.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

// NewContext binds w and r into a Context backed by r.Context().
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return requestContext{Context: r.Context(), w: w, r: r}
}

type requestContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func (c requestContext) Request() *http.Request              { return c.r }
func (c requestContext) ResponseWriter() http.ResponseWriter { return c.w }
