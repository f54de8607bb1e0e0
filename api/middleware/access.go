package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/api/responses"
	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/enums"
	pkgerrors "github.com/surveyops/surveyops-backend/pkg/errors"
	"github.com/surveyops/surveyops-backend/pkg/logger"
)

// RoleResolver loads a role with its module access. roles.Service
// satisfies it.
type RoleResolver interface {
	GetRoleByID(ctx context.Context, id uuid.UUID) (*roles.RoleDTO, error)
}

// RequireModuleAccess gates the route on the caller's role granting at
// least the given level on the module. The role is loaded per request,
// so tightening a role takes effect without waiting for token expiry.
func RequireModuleAccess(resolver RoleResolver, module enums.Module, level enums.AccessLevel, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			roleID, ok := RoleUUIDFromContext(ctx)
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			role, err := resolver.GetRoleByID(ctx, roleID)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Insufficient permissions"))
					return
				}
				responses.WriteError(ctx, logg, w, err)
				return
			}

			if !access.HasModuleAccess(role.ModuleAccess, module, level) {
				if logg != nil {
					denied := logg.WithFields(ctx, map[string]any{
						"module":         module.String(),
						"required_level": level.String(),
					})
					logg.Warn(denied, "access.denied")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "Insufficient permissions"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
