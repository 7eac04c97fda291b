package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rows(roles ...Role) []UserRole {
	out := make([]UserRole, 0, len(roles))
	for _, r := range roles {
		out = append(out, UserRole{Role: r})
	}
	return out
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name string
		in   []UserRole
		want Role
	}{
		{"empty", nil, RoleNone},
		{"user only", rows(RoleUser), RoleUser},
		{"user and admin", rows(RoleUser, RoleAdmin), RoleAdmin},
		{"admin and user reversed", rows(RoleAdmin, RoleUser), RoleAdmin},
		{"all three", rows(RoleUser, RoleSuperAdmin, RoleAdmin), RoleSuperAdmin},
		{"unknown only", rows("owner", ""), RoleNone},
		{"unknown mixed in", rows("owner", RoleUser), RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRole(tt.in))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("none")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
