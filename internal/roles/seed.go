package roles

import (
	"context"
	stdErrors "errors"

	"gorm.io/gorm"

	"github.com/surveyops/surveyops-backend/pkg/access"
	"github.com/surveyops/surveyops-backend/pkg/enums"
	"github.com/surveyops/surveyops-backend/pkg/errors"
)

// PredefinedRole describes a catalog role created on first boot.
type PredefinedRole struct {
	Name         string
	Description  string
	DefaultLevel enums.AccessLevel
}

// PredefinedRoles is the built-in catalog. Database administrators get
// full access everywhere; the remaining executive roles start read-only
// and get widened through the role-management endpoints.
var PredefinedRoles = []PredefinedRole{
	{Name: "DBA", Description: "Data base administrator", DefaultLevel: enums.AccessLevelFull},
	{Name: "CTO", Description: "Chief Technology Officer", DefaultLevel: enums.AccessLevelView},
	{Name: "COO", Description: "Chief Operating Officer", DefaultLevel: enums.AccessLevelView},
	{Name: "VP", Description: "Vice President", DefaultLevel: enums.AccessLevelView},
	{Name: "PM", Description: "Project Manager", DefaultLevel: enums.AccessLevelView},
}

// SeedPredefined creates any catalog role that does not exist yet. Roles
// already present are left untouched, so operator edits survive restarts.
func (s *service) SeedPredefined(ctx context.Context) error {
	for _, predefined := range PredefinedRoles {
		_, err := s.repo.FindByName(ctx, predefined.Name)
		if err == nil {
			continue
		}
		if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(errors.CodeInternal, err, "Failed to look up predefined role")
		}

		description := predefined.Description
		if _, err := s.CreateRole(ctx, CreateRoleInput{
			Name:         predefined.Name,
			Description:  &description,
			ModuleAccess: catalogAccess(predefined.DefaultLevel),
		}); err != nil {
			return err
		}

		if s.logger != nil {
			s.logger.Info(s.logger.WithField(ctx, "role_name", predefined.Name), "predefined role seeded")
		}
	}
	return nil
}

func catalogAccess(level enums.AccessLevel) []access.Entry {
	modules := enums.Modules()
	entries := make([]access.Entry, 0, len(modules))
	for _, module := range modules {
		entries = append(entries, access.Entry{Module: module, AccessLevel: level})
	}
	return entries
}
