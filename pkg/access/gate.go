package access

import "github.com/surveyops/surveyops-backend/pkg/enums"

// LevelFor returns the effective access level for a module within a resolved
// access list. Absent modules resolve to no_access; when duplicate entries
// exist the last one wins.
func LevelFor(entries []Entry, module enums.Module) enums.AccessLevel {
	level := enums.AccessLevelNone
	for _, entry := range entries {
		if entry.Module == module {
			level = entry.AccessLevel
		}
	}
	return level
}

// HasModuleAccess reports whether the resolved access list satisfies the
// required level for the module. Comparison follows the total order
// no_access < view_access < edit_access < full_access.
func HasModuleAccess(entries []Entry, module enums.Module, required enums.AccessLevel) bool {
	return LevelFor(entries, module).AtLeast(required)
}
