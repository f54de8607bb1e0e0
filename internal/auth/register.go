package auth

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/internal/users"
	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/db"
	"github.com/surveyops/surveyops-backend/pkg/errors"
	"github.com/surveyops/surveyops-backend/pkg/security"
)

// Register creates the user and, when moduleAccess is supplied, a custom
// role for them, all inside one transaction so a failed signup never
// leaves an orphaned role behind.
//
// moduleAccess decides the role when both it and roleId are present, but
// a supplied roleId must still reference an existing role.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error) {
	email := normalizeEmail(req.Email)
	entries := access.Normalize(req.ModuleAccess)
	if len(entries) == 0 && req.RoleID == nil {
		return nil, errors.New(errors.CodeValidation, "Either roleId or moduleAccess is required")
	}

	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "Failed to hash password")
	}

	var created *SessionResponse
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepoFactory(tx)
		roleRepo := s.roleRepoFactory(tx)

		// Pre-check for the friendlier message; the unique index on
		// users.email is what actually guarantees uniqueness under
		// concurrent signups.
		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return errors.New(errors.CodeConflict, "Email already in use")
		} else if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(errors.CodeInternal, err, "Failed to check email")
		}

		roleID, err := s.resolveRole(ctx, roleRepo, req, email, entries)
		if err != nil {
			return err
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			PhoneNumber:  req.PhoneNumber,
			RoleID:       roleID,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "idx_users_email") {
				return errors.New(errors.CodeConflict, "Email already in use")
			}
			return errors.Wrap(errors.CodeInternal, err, "Failed to create user")
		}

		token, err := s.mintToken(s.clock(), user)
		if err != nil {
			return err
		}

		created = &SessionResponse{User: users.FromModel(user), Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info(s.logger.WithUserID(ctx, created.User.ID.String()), "user registered")
	}
	return created, nil
}

// resolveRole returns the role the new user will carry: a synthesized
// custom role when access entries were supplied, otherwise the referenced
// existing role. A supplied roleId is validated either way, so a bogus
// reference fails the signup even when moduleAccess overrides it.
func (s *service) resolveRole(ctx context.Context, roleRepo roles.Repo, req RegisterRequest, email string, entries []access.Entry) (uuid.UUID, error) {
	var referenced uuid.UUID
	if req.RoleID != nil {
		role, err := roleRepo.FindByID(ctx, *req.RoleID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, errors.New(errors.CodeNotFound, "Role not found")
			}
			return uuid.Nil, errors.Wrap(errors.CodeInternal, err, "Failed to load role")
		}
		referenced = role.ID
	}

	if len(entries) == 0 {
		return referenced, nil
	}

	name := fmt.Sprintf("%s %s Role", strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	description := fmt.Sprintf("Custom role for %s", email)

	role, err := roleRepo.Create(ctx, roles.CreateRoleDTO{
		Name:        name,
		Description: &description,
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.CodeInternal, err, "Failed to create role")
	}
	if role == nil {
		return uuid.Nil, errors.New(errors.CodeInternal, "Failed to create role")
	}
	if err := roleRepo.InsertAccess(ctx, role.ID, entries); err != nil {
		return uuid.Nil, errors.Wrap(errors.CodeInternal, err, "Failed to assign module access")
	}
	return role.ID, nil
}
