package auth

// Role is the closed set of access levels a user can hold.
type Role int

const (
	RoleAdministrator Role = 1
	RoleStandard      Role = 2
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleStandard
}

func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "administrator"
	case RoleStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// Identity is the resolved {user id, role} pair carried by a verified token.
type Identity struct {
	UserID string
	Role   Role
}
