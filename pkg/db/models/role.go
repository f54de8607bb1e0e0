package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/surveyops/surveyops-backend/pkg/enums"
)

// Role is a named bundle of per-module access levels. Roles are either seeded
// from the predefined catalog or synthesized at registration time.
type Role struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string             `gorm:"type:text;not null"`
	Description  *string            `gorm:"type:text"`
	IsDeleted    bool               `gorm:"column:is_deleted;not null;default:false"`
	ModuleAccess []RoleModuleAccess `gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// RoleModuleAccess joins a role to one module at one access level. Duplicate
// (role, module) rows are tolerated by the schema; resolution is last write
// wins.
type RoleModuleAccess struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoleID      uuid.UUID         `gorm:"type:uuid;column:role_id;not null;index"`
	Module      enums.Module      `gorm:"type:module;not null"`
	AccessLevel enums.AccessLevel `gorm:"type:access_level;column:access_level;not null;default:no_access"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization for the join table.
func (RoleModuleAccess) TableName() string {
	return "role_module_access"
}
