package auth

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/account"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

type tenantInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Subdomain      string `json:"subdomain"`
	LogoURL        string `json:"logo_url,omitempty"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

func newTenantInfo(t *tenant.Tenant) *tenantInfo {
	return &tenantInfo{
		ID:             t.ID,
		Name:           t.Name,
		Subdomain:      t.Subdomain,
		LogoURL:        t.LogoURL,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
	}
}

func (s *Service) tenantLogin(ctx handler.Context, req LoginRequest) handler.Response {
	t, ok := tenant.FromContext(ctx)
	if !ok {
		return handler.JSONError(ErrTenantRequired)
	}
	if err := req.Validate(); err != nil {
		return handler.JSONError(err)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return s.loginFailure(ctx, t.Subdomain, err)
	}
	if !user.BelongsTo(t.ID) {
		s.logger.WarnContext(ctx, "login rejected: user outside tenant",
			logger.Tenant(t.Subdomain),
			logger.UserID(user.ID),
		)
		return handler.JSONError(ErrInvalidCredentials)
	}
	return s.login(ctx, session.TenantScope(t), user)
}

func (s *Service) adminLogin(ctx handler.Context, req LoginRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.JSONError(err)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return s.loginFailure(ctx, session.AdminScopeKey, err)
	}
	if user.Role != session.RoleSuperAdmin {
		s.logger.WarnContext(ctx, "admin login rejected: not a super admin",
			logger.UserID(user.ID),
			logger.Role(user.Role),
		)
		return handler.JSONError(ErrAdminOnly)
	}
	return s.login(ctx, session.AdminScope(), user)
}

func (s *Service) login(ctx handler.Context, scope session.Scope, user *account.User) handler.Response {
	p := user.Principal()
	if _, err := s.sessions.Login(ctx.ResponseWriter(), ctx.Request(), scope, p); err != nil {
		return sessionFailure(err)
	}
	s.logger.InfoContext(ctx, "login succeeded",
		logger.Scope(scope.Key),
		logger.UserID(p.ID),
	)
	return handler.JSON(map[string]any{
		"message": "Login successful",
		"user":    p,
	})
}

func (s *Service) loginFailure(ctx handler.Context, scope string, err error) handler.Response {
	if errors.Is(err, account.ErrInvalidCredentials) {
		s.logger.InfoContext(ctx, "login failed", logger.Scope(scope))
		return handler.JSONError(ErrInvalidCredentials)
	}
	s.logger.ErrorContext(ctx, "login failed", logger.Scope(scope), logger.Error(err))
	return handler.JSONError(handler.ErrServiceUnavailable)
}

func (s *Service) tenantLogout(ctx handler.Context, _ struct{}) handler.Response {
	t, ok := tenant.FromContext(ctx)
	if !ok {
		return handler.JSONError(ErrTenantRequired)
	}
	return s.logout(ctx, session.TenantScope(t))
}

func (s *Service) adminLogout(ctx handler.Context, _ struct{}) handler.Response {
	return s.logout(ctx, session.AdminScope())
}

func (s *Service) logout(ctx handler.Context, scope session.Scope) handler.Response {
	if err := s.sessions.Logout(ctx.ResponseWriter(), ctx.Request(), scope); err != nil {
		return sessionFailure(err)
	}
	return handler.JSON(map[string]string{"message": "Logged out successfully"})
}

func (s *Service) tenantSession(ctx handler.Context, _ struct{}) handler.Response {
	t, ok := tenant.FromContext(ctx)
	if !ok {
		return handler.JSON(sessionResponse{})
	}
	p, err := s.currentPrincipal(ctx, session.TenantScope(t))
	if err != nil {
		return sessionFailure(err)
	}
	if p == nil {
		return handler.JSON(sessionResponse{})
	}
	return handler.JSON(sessionResponse{User: p, Tenant: newTenantInfo(t)})
}

func (s *Service) adminSession(ctx handler.Context, _ struct{}) handler.Response {
	p, err := s.currentPrincipal(ctx, session.AdminScope())
	if err != nil {
		return sessionFailure(err)
	}
	if p == nil {
		return handler.JSON(sessionResponse{})
	}
	return handler.JSON(sessionResponse{User: p})
}

func (s *Service) tenantDetails(ctx handler.Context, _ struct{}) handler.Response {
	t, ok := tenant.FromContext(ctx)
	if !ok {
		return handler.JSONError(ErrTenantRequired)
	}
	return handler.JSON(map[string]any{"tenant": newTenantInfo(t)})
}

// currentPrincipal returns the principal of the session in scope, refreshed
// from the user repository. A nil principal means no usable session,
// including a user whose current role or tenant the scope no longer admits.
func (s *Service) currentPrincipal(ctx handler.Context, scope session.Scope) (*session.Principal, error) {
	sess, err := s.sessions.Current(ctx.Request(), scope)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}

	user, err := s.users.FindByID(ctx, sess.Principal.ID)
	switch {
	case errors.Is(err, account.ErrUserNotFound):
		s.logger.InfoContext(ctx, "session user no longer exists",
			logger.Scope(scope.Key),
			slog.String("user_id", sess.Principal.ID),
		)
		return nil, nil
	case err != nil:
		return nil, err
	}
	p := user.Principal()
	if !scope.Admits(p) {
		return nil, nil
	}
	return &p, nil
}

func sessionFailure(err error) handler.Response {
	switch {
	case errors.Is(err, session.ErrStoreUnavailable):
		return handler.JSONError(handler.ErrServiceUnavailable)
	case errors.Is(err, session.ErrScopeDenied):
		return handler.JSONError(handler.ErrForbidden)
	}
	return handler.JSONError(err)
}
