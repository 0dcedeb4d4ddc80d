package domain

import "time"

// Role is a position in the access hierarchy. The hierarchy is a total order
// expressed as data (an explicit rank map), not a type hierarchy: permission
// checks are a single rank comparison.
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleCurator Role = "curator"
	RoleAdmin   Role = "admin"
)

var roleRanks = map[Role]int{
	RoleViewer:  1,
	RoleCurator: 2,
	RoleAdmin:   3,
}

// Rank returns the role's position in the hierarchy, 0 for unknown roles so
// they never satisfy any requirement.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Allows reports whether a holder of r may act at the required level.
func (r Role) Allows(required Role) bool {
	return r.Rank() >= required.Rank()
}

// User is an operator account. PasswordHash holds a one-way digest; the
// plaintext is never persisted or logged.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Identity is the authentication result handed back to callers.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
