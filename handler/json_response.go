package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// JSONResponse is the envelope of every JSON body: data on success,
// error on failure, and optional meta such as routing diagnostics.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail is the error part of the envelope. Code is a stable machine
// key such as "tenant_not_found" or "subdomain_taken".
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSONOption adjusts a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus overrides the status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONMeta sets the meta object.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON responds with 200 and v under "data". A JSONResponse is sent as the
// envelope itself, and an error or *ErrorDetail is treated like JSONError.
func JSON(v any, opts ...JSONOption) Response {
	var r *jsonResponse
	switch val := v.(type) {
	case JSONResponse:
		r = &jsonResponse{status: http.StatusOK, body: val}
	case *ErrorDetail, error:
		return JSONError(val, opts...)
	default:
		r = &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	}
	return r.apply(opts)
}

// JSONError responds with the error envelope. The status follows the error:
// ValidationError is 422, HTTPError uses its own code, anything else is 500
// with the message withheld.
func JSONError(err any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}
	switch e := err.(type) {
	case *ErrorDetail:
		r.body.Error = e
	case error:
		r.status, r.body.Error = classify(e)
	}
	return r.apply(opts)
}

func (j *jsonResponse) apply(opts []JSONOption) Response {
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func classify(err error) (int, *ErrorDetail) {
	var verr ValidationError
	if errors.As(err, &verr) {
		d := &ErrorDetail{Code: "validation_error", Message: verr.Error()}
		if len(verr) > 0 {
			d.Details = maps.Clone(map[string][]string(verr))
		}
		return http.StatusUnprocessableEntity, d
	}
	var herr HTTPError
	if errors.As(err, &herr) {
		return herr.Code, &ErrorDetail{Code: herr.Key, Message: http.StatusText(herr.Code)}
	}
	return http.StatusInternalServerError, &ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
