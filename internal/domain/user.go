package domain

import "time"

// Role is the closed set of application roles. Anything outside the three
// known values carries no capabilities at all.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

// ParseRole maps a stored role string onto the closed set. Unknown input
// yields the zero Role, which Capabilities treats as deny-everything.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleSuperAdmin, RoleEditor, RoleViewer:
		return Role(s)
	default:
		return ""
	}
}

// Capabilities is the fixed permission record derived from a role.
type Capabilities struct {
	CanEdit        bool `json:"can_edit"`
	CanManageUsers bool `json:"can_manage_users"`
	IsSuperAdmin   bool `json:"is_super_admin"`
	IsEditor       bool `json:"is_editor"`
	IsViewer       bool `json:"is_viewer"`
}

// Capabilities resolves the role into its capability set. The switch is
// exhaustive over the known roles; everything else denies by default.
func (r Role) Capabilities() Capabilities {
	switch r {
	case RoleSuperAdmin:
		return Capabilities{CanEdit: true, CanManageUsers: true, IsSuperAdmin: true}
	case RoleEditor:
		return Capabilities{CanEdit: true, IsEditor: true}
	case RoleViewer:
		return Capabilities{IsViewer: true}
	default:
		return Capabilities{}
	}
}

// AppUser is the application-level profile tied 1:1 to an identity account.
type AppUser struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Designation       string    `json:"designation"`
	Role              Role      `json:"role"`
	LinkedMemberRegNo *string   `json:"linked_member_reg_no"`
	CreatedAt         time.Time `json:"created_at"`
}

// AppUserUpdate carries the independently mutable AppUser fields.
type AppUserUpdate struct {
	Username          *string `json:"username"`
	Designation       *string `json:"designation"`
	Role              *Role   `json:"role"`
	LinkedMemberRegNo *string `json:"linked_member_reg_no"`
}

// ActingUser is the explicit acting identity passed into every mutating
// operation, so the services never reach for ambient session state.
type ActingUser struct {
	ID   string
	Role Role
}

// Capabilities of the acting identity. A zero ActingUser denies everything.
func (u ActingUser) Capabilities() Capabilities {
	return u.Role.Capabilities()
}
