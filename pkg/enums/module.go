package enums

import "fmt"

// Module names a functional area of the platform to which access is granted
// independently.
type Module string

const (
	ModuleDashboard  Module = "dashboard"
	ModuleProjects   Module = "projects"
	ModuleSurveys    Module = "surveys"
	ModuleCalendar   Module = "calendar"
	ModuleCustomers  Module = "customers"
	ModuleComponents Module = "components"
	ModuleEquipments Module = "equipments"
	ModuleFacility   Module = "facility"
	ModuleRoles      Module = "roles"
	ModuleReports    Module = "reports"
)

var validModules = []Module{
	ModuleDashboard,
	ModuleProjects,
	ModuleSurveys,
	ModuleCalendar,
	ModuleCustomers,
	ModuleComponents,
	ModuleEquipments,
	ModuleFacility,
	ModuleRoles,
	ModuleReports,
}

// String implements fmt.Stringer.
func (m Module) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Module.
func (m Module) IsValid() bool {
	for _, candidate := range validModules {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseModule converts raw input into a Module.
func ParseModule(value string) (Module, error) {
	for _, candidate := range validModules {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid module %q", value)
}

// Modules returns the closed set of known modules.
func Modules() []Module {
	return append([]Module(nil), validModules...)
}
