package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleBusiness Role = "business_local"
	RoleClipper  Role = "clipper"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsBusiness returns true if user is a local business
func (u *User) IsBusiness() bool {
	return u.Role == RoleBusiness
}

// IsClipper returns true if user is a clipper
func (u *User) IsClipper() bool {
	return u.Role == RoleClipper
}

// CanPostGig returns true if user can post gigs
func (u *User) CanPostGig() bool {
	return u.IsBusiness() && u.IsActive
}

// CanClaimGig returns true if user can claim gigs
func (u *User) CanClaimGig() bool {
	return u.IsClipper() && u.IsActive
}

// ValidRoles returns list of valid roles for registration
func ValidRoles() []Role {
	return []Role{RoleBusiness, RoleClipper}
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}
