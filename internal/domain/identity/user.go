// Package identity holds the user and role payloads exchanged with the
// Inventra backend. The backend owns all authorization decisions; these
// types exist so pages can display identity data and gate navigation.
package identity

// Role names as issued by the backend.
const (
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
)

// User is the identity payload returned by /auth/me and /users.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// IsManager reports whether the user carries the manager role.
// This gates page navigation only; the backend re-checks every mutation.
func (u User) IsManager() bool {
	return u.Role == RoleManager
}
