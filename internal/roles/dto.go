package roles

import (
	"time"

	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/db/models"
)

// RoleDTO is a role joined with its resolved module-access list.
type RoleDTO struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Description  *string        `json:"description,omitempty"`
	ModuleAccess []access.Entry `json:"moduleAccess"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// CreateRoleDTO holds the data required by the repo to persist a new role.
type CreateRoleDTO struct {
	Name        string
	Description *string
}

func (c CreateRoleDTO) ToModel() *models.Role {
	return &models.Role{
		Name:        c.Name,
		Description: c.Description,
	}
}

// FromModel joins a role row with its access rows into the transport shape.
func FromModel(role *models.Role, rows []models.RoleModuleAccess) *RoleDTO {
	if role == nil {
		return nil
	}

	entries := make([]access.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, access.Entry{
			Module:      row.Module,
			AccessLevel: row.AccessLevel,
		})
	}

	return &RoleDTO{
		ID:           role.ID,
		Name:         role.Name,
		Description:  role.Description,
		ModuleAccess: entries,
		CreatedAt:    role.CreatedAt,
		UpdatedAt:    role.UpdatedAt,
	}
}
