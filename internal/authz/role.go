package authz

import "fmt"

// Role is the closed set of user roles. Values match the wire/database
// representation used since the first schema version.
type Role int

const (
	RoleTutor        Role = 0
	RoleVeterinarian Role = 1
	RoleAdmin        Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleTutor:
		return "Tutor"
	case RoleVeterinarian:
		return "Veterinarian"
	case RoleAdmin:
		return "Admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleTutor, RoleVeterinarian, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts the string form carried in JWT claims back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Tutor":
		return RoleTutor, nil
	case "Veterinarian":
		return RoleVeterinarian, nil
	case "Admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}
