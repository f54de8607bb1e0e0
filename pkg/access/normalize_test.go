package access

import (
	"testing"

	"github.com/surveyops/surveyops-backend/pkg/enums"
)

func TestNormalizeKeepsValidPairs(t *testing.T) {
	raw := map[string]any{
		"dashboard": "view_access",
		"projects":  "full_access",
		"surveys":   "edit_access",
	}

	entries := Normalize(raw)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	byModule := map[enums.Module]enums.AccessLevel{}
	for _, entry := range entries {
		byModule[entry.Module] = entry.AccessLevel
	}
	if byModule[enums.ModuleDashboard] != enums.AccessLevelView {
		t.Fatalf("dashboard level = %s", byModule[enums.ModuleDashboard])
	}
	if byModule[enums.ModuleProjects] != enums.AccessLevelFull {
		t.Fatalf("projects level = %s", byModule[enums.ModuleProjects])
	}
	if byModule[enums.ModuleSurveys] != enums.AccessLevelEdit {
		t.Fatalf("surveys level = %s", byModule[enums.ModuleSurveys])
	}
}

func TestNormalizeDropsInvalidEntriesButKeepsValidOnes(t *testing.T) {
	raw := map[string]any{
		"dashboard":  "view_access",
		"pipelines":  "full_access",  // unknown module
		"projects":   "root_access",  // unknown level
		"customers":  true,           // non-string value
		"calendar":   nil,            // missing value
		"equipments": "edit_access",
	}

	entries := Normalize(raw)
	if len(entries) != 2 {
		t.Fatalf("expected 2 surviving entries, got %d: %v", len(entries), entries)
	}
	for _, entry := range entries {
		if entry.Module != enums.ModuleDashboard && entry.Module != enums.ModuleEquipments {
			t.Fatalf("unexpected surviving module %s", entry.Module)
		}
	}
}

func TestNormalizeEmptyInputs(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Fatalf("expected nil for nil input, got %v", got)
	}
	if got := Normalize("view_access"); got != nil {
		t.Fatalf("expected nil for non-object input, got %v", got)
	}
	if got := Normalize(map[string]any{}); got != nil {
		t.Fatalf("expected nil for empty object, got %v", got)
	}
	if got := Normalize(map[string]any{"pipelines": "view_access"}); got != nil {
		t.Fatalf("expected nil when nothing survives, got %v", got)
	}
}

func TestHasModuleAccessMatrix(t *testing.T) {
	levels := enums.AccessLevels()
	for _, effective := range levels {
		entries := []Entry{{Module: enums.ModuleProjects, AccessLevel: effective}}
		for _, required := range levels {
			got := HasModuleAccess(entries, enums.ModuleProjects, required)
			want := effective.Rank() >= required.Rank()
			if got != want {
				t.Fatalf("HasModuleAccess(%s, required %s) = %v, want %v", effective, required, got, want)
			}
		}
	}
}

func TestHasModuleAccessAbsentModuleIsNoAccess(t *testing.T) {
	entries := []Entry{{Module: enums.ModuleProjects, AccessLevel: enums.AccessLevelFull}}

	if !HasModuleAccess(entries, enums.ModuleSurveys, enums.AccessLevelNone) {
		t.Fatal("no_access requirement must always be satisfied")
	}
	if HasModuleAccess(entries, enums.ModuleSurveys, enums.AccessLevelView) {
		t.Fatal("absent module must not satisfy view_access")
	}
}

func TestLevelForLastWriteWins(t *testing.T) {
	entries := []Entry{
		{Module: enums.ModuleReports, AccessLevel: enums.AccessLevelFull},
		{Module: enums.ModuleReports, AccessLevel: enums.AccessLevelView},
	}
	if got := LevelFor(entries, enums.ModuleReports); got != enums.AccessLevelView {
		t.Fatalf("expected last duplicate to win, got %s", got)
	}
}
