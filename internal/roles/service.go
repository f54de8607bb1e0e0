package roles

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/db"
	"github.com/surveyops/surveyops-backend/pkg/db/models"
	"github.com/surveyops/surveyops-backend/pkg/errors"
	"github.com/surveyops/surveyops-backend/pkg/logger"
)

// Repo is the persistence surface the service depends on. *Repository
// satisfies it; tests substitute stubs.
type Repo interface {
	Create(ctx context.Context, dto CreateRoleDTO) (*models.Role, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	FindByName(ctx context.Context, name string) (*models.Role, error)
	ListAll(ctx context.Context) ([]models.Role, error)
	AccessForRole(ctx context.Context, roleID uuid.UUID) ([]models.RoleModuleAccess, error)
	InsertAccess(ctx context.Context, roleID uuid.UUID, entries []access.Entry) error
	DeleteAccessForRole(ctx context.Context, roleID uuid.UUID) error
}

// Service manages roles and their module-access assignments.
type Service interface {
	CreateRole(ctx context.Context, input CreateRoleInput) (*RoleDTO, error)
	GetRoleByID(ctx context.Context, id uuid.UUID) (*RoleDTO, error)
	ListRoles(ctx context.Context) ([]*RoleDTO, error)
	ReplaceModuleAccess(ctx context.Context, roleID uuid.UUID, entries []access.Entry) (*RoleDTO, error)
	SeedPredefined(ctx context.Context) error
}

// CreateRoleInput carries everything needed to create a role together
// with its module-access rows.
type CreateRoleInput struct {
	Name         string
	Description  *string
	ModuleAccess []access.Entry
}

// ServiceParams wires the service dependencies.
type ServiceParams struct {
	TxRunner    db.TxRunner
	Repo        Repo
	RepoFactory func(tx *gorm.DB) Repo
	Logger      *logger.Logger
}

type service struct {
	txRunner    db.TxRunner
	repo        Repo
	repoFactory func(tx *gorm.DB) Repo
	logger      *logger.Logger
}

// NewService constructs the roles service.
func NewService(params ServiceParams) Service {
	return &service{
		txRunner:    params.TxRunner,
		repo:        params.Repo,
		repoFactory: params.RepoFactory,
		logger:      params.Logger,
	}
}

// CreateRole persists the role and its access rows in one transaction.
// A role with no access rows is unusable, so an empty list is rejected
// up front.
func (s *service) CreateRole(ctx context.Context, input CreateRoleInput) (*RoleDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New(errors.CodeValidation, "Role name is required")
	}
	if len(input.ModuleAccess) == 0 {
		return nil, errors.New(errors.CodeValidation, "Module access is required")
	}

	var dto *RoleDTO
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		role, err := repo.Create(ctx, CreateRoleDTO{
			Name:        name,
			Description: input.Description,
		})
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "Failed to create role")
		}
		if role == nil {
			return errors.New(errors.CodeInternal, "Failed to create role")
		}

		if err := repo.InsertAccess(ctx, role.ID, input.ModuleAccess); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "Failed to assign module access")
		}

		rows, err := repo.AccessForRole(ctx, role.ID)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "Failed to resolve module access")
		}

		dto = FromModel(role, rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info(s.logger.WithField(ctx, "role_name", name), "role created")
	}
	return dto, nil
}

// GetRoleByID loads a single role with its resolved module access.
func (s *service) GetRoleByID(ctx context.Context, id uuid.UUID) (*RoleDTO, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "Role not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "Failed to load role")
	}

	rows, err := s.repo.AccessForRole(ctx, role.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "Failed to resolve module access")
	}

	return FromModel(role, rows), nil
}

// ListRoles returns every role, each joined with its access rows.
func (s *service) ListRoles(ctx context.Context) ([]*RoleDTO, error) {
	roleRows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "Failed to list roles")
	}

	out := make([]*RoleDTO, 0, len(roleRows))
	for i := range roleRows {
		role := roleRows[i]
		rows, err := s.repo.AccessForRole(ctx, role.ID)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "Failed to resolve module access")
		}
		out = append(out, FromModel(&role, rows))
	}
	return out, nil
}

// ReplaceModuleAccess swaps the role's access rows for the provided set.
// The replacement is total: rows absent from entries are gone afterwards.
func (s *service) ReplaceModuleAccess(ctx context.Context, roleID uuid.UUID, entries []access.Entry) (*RoleDTO, error) {
	if len(entries) == 0 {
		return nil, errors.New(errors.CodeValidation, "Module access is required")
	}

	var dto *RoleDTO
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		role, err := repo.FindByID(ctx, roleID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.CodeNotFound, "Role not found")
			}
			return errors.Wrap(errors.CodeInternal, err, "Failed to load role")
		}

		if err := repo.DeleteAccessForRole(ctx, role.ID); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "Failed to clear module access")
		}
		if err := repo.InsertAccess(ctx, role.ID, entries); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "Failed to assign module access")
		}

		rows, err := repo.AccessForRole(ctx, role.ID)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "Failed to resolve module access")
		}

		dto = FromModel(role, rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info(s.logger.WithRoleID(ctx, roleID.String()), "role module access replaced")
	}
	return dto, nil
}
