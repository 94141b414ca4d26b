package domain

import "time"

// Role is the closed set of roles an account can hold. Exactly one role
// is assigned per account.
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Authority derives the single granted authority string for the role.
// Authorities are never persisted; they exist only on resolved principals.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusPending   AccountStatus = "PENDING"
)

// Account is the persisted record backing an authenticated identity.
// Username is unique per account and is the token subject.
type Account struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	Phone        string
	Avatar       string
	Bio          string
	PasswordHash string
	Role         Role
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
