package entity

// Role is the authorization role stored on a user record.
type Role string

const (
	RoleNormalUser Role = "normal_user"
	RoleSuperAdmin Role = "super_admin"
	RoleITAdmin    Role = "it_admin"
)

// ParseRole maps a stored or claimed role onto a known Role.
// Unknown values become RoleNormalUser.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleSuperAdmin:
		return RoleSuperAdmin
	case RoleITAdmin:
		return RoleITAdmin
	default:
		return RoleNormalUser
	}
}

// CanModifyAnyEvent is true only for super_admin.
func (r Role) CanModifyAnyEvent() bool { return r == RoleSuperAdmin }

// Moderates reports whether the role may remove content written by others.
func (r Role) Moderates() bool { return r == RoleSuperAdmin || r == RoleITAdmin }
