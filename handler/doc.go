// Package handler provides typed HTTP handlers: a HandlerFunc binds the
// request into a struct with the configured binders and returns a Response
// that renders itself.
//
//	type loginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	login := func(ctx handler.Context, req loginRequest) handler.Response {
//		user, err := accounts.Authenticate(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.JSONError(handler.ErrUnauthorized)
//		}
//		return handler.JSON(user)
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, loginRequest](binder.JSON()),
//	))
//
// JSON and JSONError use the {data, meta, error} envelope. Templ renders a
// templ component as HTML.
//
// Errors returned by binders or Render go to the ErrorHandler. HTTPError
// carries a status code and a machine-readable key that end up in the JSON
// error body.
package handler
