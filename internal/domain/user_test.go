package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Capabilities(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want Capabilities
	}{
		{
			name: "super admin can edit and manage users",
			role: RoleSuperAdmin,
			want: Capabilities{CanEdit: true, CanManageUsers: true, IsSuperAdmin: true},
		},
		{
			name: "editor can edit but not manage users",
			role: RoleEditor,
			want: Capabilities{CanEdit: true, IsEditor: true},
		},
		{
			name: "viewer gets read-only",
			role: RoleViewer,
			want: Capabilities{IsViewer: true},
		},
		{
			name: "unknown role denies everything",
			role: Role("moderator"),
			want: Capabilities{},
		},
		{
			name: "zero role denies everything",
			role: Role(""),
			want: Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Capabilities())
		})
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleSuperAdmin, ParseRole("super_admin"))
	assert.Equal(t, RoleEditor, ParseRole("editor"))
	assert.Equal(t, RoleViewer, ParseRole("viewer"))
	assert.Equal(t, Role(""), ParseRole("admin"))
	assert.Equal(t, Role(""), ParseRole(""))
}

func TestActingUser_Capabilities_ZeroValueDenies(t *testing.T) {
	var acting ActingUser

	assert.Equal(t, Capabilities{}, acting.Capabilities())
}
