package models

import (
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	// RoleNone is the effective role of a user without any recognized role row.
	RoleNone Role = "none"
)

// rolePriority is highest privilege first.
var rolePriority = []Role{RoleSuperAdmin, RoleAdmin, RoleUser}

type UserRole struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role"`
	Role   Role      `json:"role" gorm:"type:text;not null;uniqueIndex:idx_user_roles_user_role"`
}

func ParseRole(s string) (Role, error) {
	for _, r := range rolePriority {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: role %q", ErrInvalidValue, s)
}

// ResolveRole picks the effective role from an unordered set of role rows.
// Storage order is irrelevant and unrecognized role strings are ignored.
func ResolveRole(rows []UserRole) Role {
	present := make(map[Role]bool, len(rows))
	for _, row := range rows {
		present[row.Role] = true
	}
	for _, r := range rolePriority {
		if present[r] {
			return r
		}
	}
	return RoleNone
}
