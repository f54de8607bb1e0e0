package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/enums"
	pkgerrors "github.com/surveyops/surveyops-backend/pkg/errors"
	"github.com/surveyops/surveyops-backend/pkg/types"
)

type stubRolesService struct {
	createFn  func(context.Context, roles.CreateRoleInput) (*roles.RoleDTO, error)
	getFn     func(context.Context, uuid.UUID) (*roles.RoleDTO, error)
	listFn    func(context.Context) ([]*roles.RoleDTO, error)
	replaceFn func(context.Context, uuid.UUID, []access.Entry) (*roles.RoleDTO, error)
}

func (s *stubRolesService) CreateRole(ctx context.Context, input roles.CreateRoleInput) (*roles.RoleDTO, error) {
	return s.createFn(ctx, input)
}

func (s *stubRolesService) GetRoleByID(ctx context.Context, id uuid.UUID) (*roles.RoleDTO, error) {
	return s.getFn(ctx, id)
}

func (s *stubRolesService) ListRoles(ctx context.Context) ([]*roles.RoleDTO, error) {
	return s.listFn(ctx)
}

func (s *stubRolesService) ReplaceModuleAccess(ctx context.Context, roleID uuid.UUID, entries []access.Entry) (*roles.RoleDTO, error) {
	return s.replaceFn(ctx, roleID, entries)
}

func (s *stubRolesService) SeedPredefined(ctx context.Context) error {
	return nil
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRoleCreateNormalizesAccessMap(t *testing.T) {
	var got roles.CreateRoleInput
	svc := &stubRolesService{
		createFn: func(ctx context.Context, input roles.CreateRoleInput) (*roles.RoleDTO, error) {
			got = input
			return &roles.RoleDTO{ID: uuid.New(), Name: input.Name, ModuleAccess: input.ModuleAccess}, nil
		},
	}

	body := `{"name":"Surveyor","moduleAccess":{"surveys":"edit_access","bogus":"edit_access","reports":"not_a_level"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roles/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	RoleCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(got.ModuleAccess) != 1 {
		t.Fatalf("invalid pairs should be dropped, got %v", got.ModuleAccess)
	}
	entry := got.ModuleAccess[0]
	if entry.Module != enums.ModuleSurveys || entry.AccessLevel != enums.AccessLevelEdit {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestRoleCreateRejectsMissingAccessMap(t *testing.T) {
	svc := &stubRolesService{
		createFn: func(ctx context.Context, input roles.CreateRoleInput) (*roles.RoleDTO, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	body := `{"name":"Surveyor"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roles/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	RoleCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRoleDetailRejectsMalformedID(t *testing.T) {
	svc := &stubRolesService{
		getFn: func(ctx context.Context, id uuid.UUID) (*roles.RoleDTO, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roles/nope", nil)
	req = withRouteParam(req, "roleID", "nope")
	rec := httptest.NewRecorder()

	RoleDetail(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRoleDetailMapsNotFound(t *testing.T) {
	svc := &stubRolesService{
		getFn: func(ctx context.Context, id uuid.UUID) (*roles.RoleDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Role not found")
		},
	}

	roleID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/roles/"+roleID, nil)
	req = withRouteParam(req, "roleID", roleID)
	rec := httptest.NewRecorder()

	RoleDetail(svc, nil)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRoleListReturnsRoles(t *testing.T) {
	svc := &stubRolesService{
		listFn: func(ctx context.Context) ([]*roles.RoleDTO, error) {
			return []*roles.RoleDTO{
				{ID: uuid.New(), Name: "DBA"},
				{ID: uuid.New(), Name: "PM"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roles/", nil)
	rec := httptest.NewRecorder()

	RoleList(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	list := envelope.Data.(map[string]any)["roles"].([]any)
	if len(list) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(list))
	}
}

func TestRoleReplaceModuleAccessPassesNormalizedEntries(t *testing.T) {
	roleID := uuid.New()
	var gotEntries []access.Entry
	svc := &stubRolesService{
		replaceFn: func(ctx context.Context, id uuid.UUID, entries []access.Entry) (*roles.RoleDTO, error) {
			if id != roleID {
				t.Fatalf("unexpected role id %s", id)
			}
			gotEntries = entries
			return &roles.RoleDTO{ID: id, Name: "Surveyor", ModuleAccess: entries}, nil
		},
	}

	body := `{"moduleAccess":{"surveys":"view_access"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/roles/"+roleID.String()+"/module-access", strings.NewReader(body))
	req = withRouteParam(req, "roleID", roleID.String())
	rec := httptest.NewRecorder()

	RoleReplaceModuleAccess(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotEntries) != 1 || gotEntries[0].Module != enums.ModuleSurveys {
		t.Fatalf("unexpected entries %v", gotEntries)
	}
}
