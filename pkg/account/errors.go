package account

import "errors"

var (
	ErrUserNotFound       = errors.New("account.user_not_found")
	ErrEmailTaken         = errors.New("account.email_taken")
	ErrInvalidEmail       = errors.New("account.invalid_email")
	ErrPasswordRequired   = errors.New("account.password_required")
	ErrInvalidRole        = errors.New("account.invalid_role")
	ErrInvalidCredentials = errors.New("account.invalid_credentials")
	ErrInvalidSeed        = errors.New("account.invalid_seed")
)
