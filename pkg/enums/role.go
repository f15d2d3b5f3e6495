package enums

import "fmt"

// Role is the staff role attached to a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// DefaultRole is assigned when registration omits the role field.
const DefaultRole = RoleAdmin

var allRoles = []Role{RoleAdmin, RoleManager}

func (r Role) IsValid() bool {
	for _, candidate := range allRoles {
		if r == candidate {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole validates a raw string against the known roles.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", raw)
	}
	return role, nil
}

// Roles returns the full role set, used by validation and docs.
func Roles() []Role {
	return append([]Role(nil), allRoles...)
}
