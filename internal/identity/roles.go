package identity

import "fmt"

// Role is the closed set of actor roles. Every authorization decision
// keys off this enumeration; handlers never compare raw role strings.
type Role string

const (
	RoleSuperAdmin      Role = "superadmin"
	RoleAdmin           Role = "admin"
	RoleGeneralTrainer  Role = "generaltrainer"
	RolePersonalTrainer Role = "personaltrainer"
	RoleReceptionist    Role = "receptionist"
	RoleHousekeeping    Role = "housekeeping"
	RoleMember          Role = "member"
)

var allRoles = map[Role]struct{}{
	RoleSuperAdmin:      {},
	RoleAdmin:           {},
	RoleGeneralTrainer:  {},
	RolePersonalTrainer: {},
	RoleReceptionist:    {},
	RoleHousekeeping:    {},
	RoleMember:          {},
}

// ParseRole validates a raw role claim against the closed set.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if _, ok := allRoles[r]; !ok {
		return "", fmt.Errorf("unknown role: %q", raw)
	}
	return r, nil
}

// Roles returns the closed set in a stable order, for the
// role administration listing endpoints.
func Roles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleAdmin,
		RoleGeneralTrainer,
		RolePersonalTrainer,
		RoleReceptionist,
		RoleHousekeeping,
		RoleMember,
	}
}

func (r Role) String() string { return string(r) }

// IsStaff reports whether the role belongs to branch personnel rather
// than a gym member.
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleGeneralTrainer, RolePersonalTrainer, RoleReceptionist, RoleHousekeeping:
		return true
	default:
		return false
	}
}
