package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenantgate/pkg/logger"
)

// HashPassword hashes password with bcrypt at cost.
func HashPassword(password string, cost int) ([]byte, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Authenticator verifies email and password pairs.
type Authenticator struct {
	users  Repository
	dummy  []byte
	logger *slog.Logger
}

// AuthOption configures an Authenticator.
type AuthOption func(*Authenticator)

// WithAuthLogger sets the logger for lookup failures.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuthenticator creates an Authenticator over users.
func NewAuthenticator(users Repository, opts ...AuthOption) *Authenticator {
	// Compared against when the email is unknown so both paths cost one bcrypt run.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("tenantgate-dummy-password"), bcrypt.DefaultCost)
	a := &Authenticator{
		users:  users,
		dummy:  dummy,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate returns the user for valid credentials. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := a.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			a.logger.ErrorContext(ctx, "user lookup failed", logger.Component("account"), logger.Error(err))
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(a.dummy, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
