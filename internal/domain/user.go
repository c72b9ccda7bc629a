package domain

import "time"

// Role is the access tier of a user account.
type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ValidRole reports whether r is one of the known role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role grants access to the admin back-office.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
