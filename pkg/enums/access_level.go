package enums

import "fmt"

// AccessLevel is an ordered permission grade applied per module.
type AccessLevel string

const (
	AccessLevelNone AccessLevel = "no_access"
	AccessLevelView AccessLevel = "view_access"
	AccessLevelEdit AccessLevel = "edit_access"
	AccessLevelFull AccessLevel = "full_access"
)

var validAccessLevels = []AccessLevel{
	AccessLevelNone,
	AccessLevelView,
	AccessLevelEdit,
	AccessLevelFull,
}

var accessLevelRanks = map[AccessLevel]int{
	AccessLevelNone: 0,
	AccessLevelView: 1,
	AccessLevelEdit: 2,
	AccessLevelFull: 3,
}

// String implements fmt.Stringer.
func (a AccessLevel) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AccessLevel.
func (a AccessLevel) IsValid() bool {
	_, ok := accessLevelRanks[a]
	return ok
}

// Rank returns the position of the level in the total order. Unknown levels
// rank as no_access.
func (a AccessLevel) Rank() int {
	return accessLevelRanks[a]
}

// AtLeast reports whether the level satisfies the required level. Comparison is
// by rank, never by string equality.
func (a AccessLevel) AtLeast(required AccessLevel) bool {
	return a.Rank() >= required.Rank()
}

// ParseAccessLevel converts raw input into an AccessLevel.
func ParseAccessLevel(value string) (AccessLevel, error) {
	for _, candidate := range validAccessLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid access level %q", value)
}

// AccessLevels returns the closed set of levels in ascending order.
func AccessLevels() []AccessLevel {
	return append([]AccessLevel(nil), validAccessLevels...)
}
