package domain

// Role is the closed set of user roles, ordered by privilege.
type Role string

const (
	RolePlayer        Role = "player"
	RoleGameMaster    Role = "game-master"
	RoleAdministrator Role = "administrator"
)

// Rank returns the numeric privilege level of the role. Unknown roles rank 0,
// below every valid role.
func (r Role) Rank() int {
	switch r {
	case RolePlayer:
		return 1
	case RoleGameMaster:
		return 2
	case RoleAdministrator:
		return 3
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether the role meets or exceeds the required role.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && r.Rank() >= required.Rank()
}

// ParseRole validates a role string coming from a request or a stored record.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
