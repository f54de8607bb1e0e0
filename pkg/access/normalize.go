// Package access holds the pure pieces of the permission model: turning the
// checkbox-grid payload a client sends into validated module/level pairs, and
// the rank comparison every protected operation runs.
package access

import "github.com/surveyops/surveyops-backend/pkg/enums"

// Entry pairs one module with one access level. A role's access set is exactly
// a list of entries.
type Entry struct {
	Module      enums.Module      `json:"module"`
	AccessLevel enums.AccessLevel `json:"accessLevel"`
}

// Normalize converts the loosely-typed map a checkbox UI produces (one level
// per module, indexed by module name) into the canonical list of entries.
// Unknown module names, non-string values, and unknown levels are dropped.
// Returns nil when the input is not a non-empty object or when nothing
// survives validation, so callers can treat "no module access" as one case.
func Normalize(raw any) []Entry {
	object, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	var entries []Entry
	for _, module := range enums.Modules() {
		value, ok := object[string(module)]
		if !ok {
			continue
		}
		levelString, ok := value.(string)
		if !ok {
			continue
		}
		level, err := enums.ParseAccessLevel(levelString)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Module: module, AccessLevel: level})
	}

	return entries
}
