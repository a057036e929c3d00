package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// ValidRole reports whether role names one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClient
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("email already exists")
var ErrCPFExists = errors.New("cpf already exists")
var ErrUserDeleted = errors.New("user already deleted")
var ErrRoleNotFound = errors.New("role does not exist")
var ErrInvalidCPF = errors.New("invalid cpf")
var ErrForbidden = errors.New("not enough permissions")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenRevoked = errors.New("token revoked")

// User models an identity in the system. Admins and clients share one table
// and one uniqueness space; Role is the discriminator.
type User struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	CPF          string     `json:"cpf"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Deleted reports whether the user has been soft-deleted. DeletedAt is the
// single source of truth; there is no boolean flag that can drift from it.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}

// SoftDelete marks the user as deleted at the given instant.
func (u *User) SoftDelete(at time.Time) {
	u.DeletedAt = &at
}

// IsAdmin reports whether the user holds the admin capability.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
