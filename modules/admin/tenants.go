package admin

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/tenantgate/handler"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

// Error responses of the tenant endpoints.
var (
	ErrTenantNotFound = handler.NewHTTPError(http.StatusNotFound, "tenant_not_found")
	ErrSubdomainTaken = handler.NewHTTPError(http.StatusConflict, "subdomain_taken")
	ErrTenantIDTaken  = handler.NewHTTPError(http.StatusConflict, "tenant_id_taken")
)

type tenantRequest struct {
	ID string `path:"id"`
}

type updateRequest struct {
	ID string `path:"id" json:"-"`
	tenant.UpdateInput
}

func (s *Service) listTenants(ctx handler.Context, _ struct{}) handler.Response {
	list, err := s.tenants.List(ctx)
	if err != nil {
		return s.tenantFailure(ctx, "list", err)
	}
	return handler.JSON(map[string]any{
		"tenants": list,
		"count":   len(list),
	})
}

func (s *Service) createTenant(ctx handler.Context, in tenant.CreateInput) handler.Response {
	t, err := s.tenants.Create(ctx, in)
	if err != nil {
		return s.tenantFailure(ctx, "create", err)
	}
	s.logger.InfoContext(ctx, "tenant created",
		logger.Tenant(t.Subdomain),
		logger.TenantID(t.ID),
	)
	return handler.JSON(map[string]any{
		"message": "Tenant created successfully",
		"tenant":  t,
	}, handler.WithJSONStatus(http.StatusCreated))
}

func (s *Service) getTenant(ctx handler.Context, req tenantRequest) handler.Response {
	t, err := s.tenants.FindByID(ctx, req.ID)
	if err != nil {
		return s.tenantFailure(ctx, "get", err)
	}
	return handler.JSON(map[string]any{"tenant": t})
}

func (s *Service) updateTenant(ctx handler.Context, req updateRequest) handler.Response {
	before, t, err := s.tenants.Update(ctx, req.ID, req.UpdateInput)
	if err != nil {
		return s.tenantFailure(ctx, "update", err)
	}

	// Sessions of the old subdomain must not survive a rename.
	if t.Subdomain != before.Subdomain {
		s.revokeScope(ctx, before.Subdomain)
		s.logger.InfoContext(ctx, "tenant subdomain changed",
			logger.TenantID(t.ID),
			logger.Tenant(t.Subdomain),
			logger.Scope(before.Subdomain),
		)
	}
	return handler.JSON(map[string]any{
		"message": "Tenant updated successfully",
		"tenant":  t,
	})
}

func (s *Service) deleteTenant(ctx handler.Context, req tenantRequest) handler.Response {
	t, err := s.tenants.Delete(ctx, req.ID)
	if err != nil {
		return s.tenantFailure(ctx, "delete", err)
	}
	s.revokeScope(ctx, t.Subdomain)

	removed, err := s.users.DeleteByTenant(ctx, t.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to remove tenant users",
			logger.TenantID(t.ID),
			logger.Error(err),
		)
	}
	s.logger.InfoContext(ctx, "tenant deleted",
		logger.Tenant(t.Subdomain),
		logger.TenantID(t.ID),
	)
	return handler.JSON(map[string]any{
		"message":       "Tenant deleted successfully",
		"tenant":        t,
		"users_removed": removed,
	})
}

func (s *Service) revokeScope(ctx handler.Context, scope string) {
	if err := s.sessions.RevokeScope(ctx, scope); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke tenant sessions",
			logger.Scope(scope),
			logger.Error(err),
		)
	}
}

func (s *Service) tenantFailure(ctx handler.Context, op string, err error) handler.Response {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		return handler.JSONError(ErrTenantNotFound)
	case errors.Is(err, tenant.ErrSubdomainTaken):
		return handler.JSONError(ErrSubdomainTaken)
	case errors.Is(err, tenant.ErrTenantIDTaken):
		return handler.JSONError(ErrTenantIDTaken)
	case errors.Is(err, tenant.ErrInvalidSubdomain), errors.Is(err, tenant.ErrReservedSubdomain):
		verr := handler.NewValidationError()
		verr.Add("subdomain", err.Error())
		return handler.JSONError(verr)
	case errors.Is(err, tenant.ErrNameRequired):
		verr := handler.NewValidationError()
		verr.Add("name", err.Error())
		return handler.JSONError(verr)
	}

	s.logger.ErrorContext(ctx, "tenant operation failed",
		logger.Event(op),
		logger.Error(err),
	)
	if errors.Is(err, tenant.ErrUnavailable) {
		return handler.JSONError(handler.ErrServiceUnavailable)
	}
	return handler.JSONError(err)
}
