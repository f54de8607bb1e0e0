package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/api/responses"
	"github.com/surveyops/surveyops-backend/api/validators"
	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/pkg/access"
	pkgerrors "github.com/surveyops/surveyops-backend/pkg/errors"
	"github.com/surveyops/surveyops-backend/pkg/logger"
)

// CreateRoleRequest is the role-creation wire shape. moduleAccess is an
// object keyed by module name; unknown modules and levels are dropped
// during normalization.
type CreateRoleRequest struct {
	Name         string         `json:"name" validate:"required,max=100"`
	Description  *string        `json:"description,omitempty" validate:"omitempty,max=500"`
	ModuleAccess map[string]any `json:"moduleAccess" validate:"required"`
}

// ReplaceModuleAccessRequest carries the full replacement access map.
type ReplaceModuleAccessRequest struct {
	ModuleAccess map[string]any `json:"moduleAccess" validate:"required"`
}

// RoleCreate persists a role together with its module access.
func RoleCreate(svc roles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateRoleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries := access.Normalize(body.ModuleAccess)
		role, err := svc.CreateRole(r.Context(), roles.CreateRoleInput{
			Name:         body.Name,
			Description:  body.Description,
			ModuleAccess: entries,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"role": role})
	}
}

// RoleList returns every role with its resolved module access.
func RoleList(svc roles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListRoles(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"roles": list})
	}
}

// RoleDetail returns one role by id.
func RoleDetail(svc roles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := roleIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := svc.GetRoleByID(r.Context(), roleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"role": role})
	}
}

// RoleReplaceModuleAccess swaps the role's access rows for the supplied
// map. The replacement is total: modules omitted from the request lose
// their rows.
func RoleReplaceModuleAccess(svc roles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, err := roleIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ReplaceModuleAccessRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries := access.Normalize(body.ModuleAccess)
		role, err := svc.ReplaceModuleAccess(r.Context(), roleID, entries)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"role": role})
	}
}

func roleIDFromURL(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "roleID")
	roleID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "roleID must be a valid UUID")
	}
	return roleID, nil
}
