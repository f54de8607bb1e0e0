package roles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/db/models"
)

// Repository exposes role and module-access persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a roles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new role row.
func (r *Repository) Create(ctx context.Context, dto CreateRoleDTO) (*models.Role, error) {
	role := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// FindByID loads a role by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByName returns the first non-deleted role carrying the given name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).
		Where("name = ? AND is_deleted = false", name).
		First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ListAll returns every non-deleted role.
func (r *Repository) ListAll(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("created_at").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// AccessForRole resolves the module-access rows bound to a role.
func (r *Repository) AccessForRole(ctx context.Context, roleID uuid.UUID) ([]models.RoleModuleAccess, error) {
	var rows []models.RoleModuleAccess
	if err := r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertAccess persists one access row per entry for the role.
func (r *Repository) InsertAccess(ctx context.Context, roleID uuid.UUID, entries []access.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.RoleModuleAccess, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, models.RoleModuleAccess{
			RoleID:      roleID,
			Module:      entry.Module,
			AccessLevel: entry.AccessLevel,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteAccessForRole removes every access row bound to the role.
func (r *Repository) DeleteAccessForRole(ctx context.Context, roleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		Delete(&models.RoleModuleAccess{}).Error
}
