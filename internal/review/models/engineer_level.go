package models

import (
	"fmt"

	dErrors "calibra/pkg/domain-errors"
)

// EngineerLevel is a career level. The zero value means the level is not recorded.
type EngineerLevel string

const (
	LevelJunior    EngineerLevel = "JUNIOR"
	LevelMid       EngineerLevel = "MID"
	LevelSenior    EngineerLevel = "SENIOR"
	LevelStaff     EngineerLevel = "STAFF"
	LevelPrincipal EngineerLevel = "PRINCIPAL"
	LevelLead      EngineerLevel = "LEAD"
	LevelManager   EngineerLevel = "MANAGER"
)

// UnknownLabel is shown for missing names and levels.
const UnknownLabel = "Unknown"

var engineerLevels = map[EngineerLevel]struct{}{
	LevelJunior: {}, LevelMid: {}, LevelSenior: {}, LevelStaff: {},
	LevelPrincipal: {}, LevelLead: {}, LevelManager: {},
}

// ParseEngineerLevel accepts an empty string as "not recorded".
func ParseEngineerLevel(s string) (EngineerLevel, error) {
	if s == "" {
		return "", nil
	}
	l := EngineerLevel(s)
	if _, ok := engineerLevels[l]; !ok {
		return "", dErrors.Wrap(ErrInvalidEngineerLevel, dErrors.CodeValidation, fmt.Sprintf("Invalid engineer level: %q", s))
	}
	return l, nil
}

func (l EngineerLevel) IsKnown() bool {
	_, ok := engineerLevels[l]
	return ok
}

// Label returns the level for display, "Unknown" when not recorded.
func (l EngineerLevel) Label() string {
	if l == "" {
		return UnknownLabel
	}
	return string(l)
}
