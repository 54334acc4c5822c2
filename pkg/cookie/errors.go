package cookie

import "errors"

var (
	// ErrNoSecret is returned by New when no signing secret is configured.
	ErrNoSecret       = errors.New("cookie.no_secret")
	ErrSecretTooShort = errors.New("cookie.secret_too_short")

	// ErrCookieNotFound means the request carries no cookie with that name.
	ErrCookieNotFound = errors.New("cookie.not_found")
	// ErrInvalidFormat and ErrInvalidSignature mean the value was tampered
	// with or signed for another cookie name.
	ErrInvalidFormat    = errors.New("cookie.invalid_format")
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
)
