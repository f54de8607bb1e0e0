package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/enums"
	pkgerrors "github.com/surveyops/surveyops-backend/pkg/errors"
)

type fakeRoleResolver struct {
	byID map[uuid.UUID]*roles.RoleDTO
}

func (f *fakeRoleResolver) GetRoleByID(ctx context.Context, id uuid.UUID) (*roles.RoleDTO, error) {
	role, ok := f.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Role not found")
	}
	return role, nil
}

func resolverWith(roleID uuid.UUID, entries []access.Entry) *fakeRoleResolver {
	return &fakeRoleResolver{byID: map[uuid.UUID]*roles.RoleDTO{
		roleID: {ID: roleID, Name: "Test", ModuleAccess: entries},
	}}
}

func serveWithRole(t *testing.T, handler http.Handler, roleID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/roles/", nil)
	if roleID != "" {
		req = req.WithContext(WithRoleID(req.Context(), roleID))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireModuleAccessAllowsSufficientLevel(t *testing.T) {
	roleID := uuid.New()
	resolver := resolverWith(roleID, []access.Entry{
		{Module: enums.ModuleRoles, AccessLevel: enums.AccessLevelEdit},
	})

	handler := RequireModuleAccess(resolver, enums.ModuleRoles, enums.AccessLevelView, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	rec := serveWithRole(t, handler, roleID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireModuleAccessDeniesInsufficientLevel(t *testing.T) {
	roleID := uuid.New()
	resolver := resolverWith(roleID, []access.Entry{
		{Module: enums.ModuleRoles, AccessLevel: enums.AccessLevelView},
	})

	handler := RequireModuleAccess(resolver, enums.ModuleRoles, enums.AccessLevelFull, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	rec := serveWithRole(t, handler, roleID.String())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireModuleAccessDeniesAbsentModule(t *testing.T) {
	roleID := uuid.New()
	resolver := resolverWith(roleID, []access.Entry{
		{Module: enums.ModuleDashboard, AccessLevel: enums.AccessLevelFull},
	})

	handler := RequireModuleAccess(resolver, enums.ModuleRoles, enums.AccessLevelView, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	rec := serveWithRole(t, handler, roleID.String())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireModuleAccessDeniesUnknownRole(t *testing.T) {
	resolver := &fakeRoleResolver{byID: map[uuid.UUID]*roles.RoleDTO{}}

	handler := RequireModuleAccess(resolver, enums.ModuleRoles, enums.AccessLevelView, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	rec := serveWithRole(t, handler, uuid.NewString())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireModuleAccessRequiresAuthContext(t *testing.T) {
	resolver := &fakeRoleResolver{byID: map[uuid.UUID]*roles.RoleDTO{}}

	handler := RequireModuleAccess(resolver, enums.ModuleRoles, enums.AccessLevelView, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	rec := serveWithRole(t, handler, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
