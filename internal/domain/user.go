package domain

import (
	"errors"
	"fmt"
	"time"
)

// User represents a back-office user
type User struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access, including deletions and register management
	RoleAdmin Role = "admin"

	// RoleCashier records orders, payments and register transactions
	RoleCashier Role = "cashier"

	// RoleViewer can only read
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:   true,
	RoleCashier: true,
	RoleViewer:  true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanCreate checks if the role can create or update resources
func (r Role) CanCreate() bool {
	return r == RoleAdmin || r == RoleCashier
}

// CanDelete checks if the role can delete resources
func (r Role) CanDelete() bool {
	return r == RoleAdmin
}

// CanManageRegister checks if the role can open and close the register
func (r Role) CanManageRegister() bool {
	return r == RoleAdmin || r == RoleCashier
}

// CanViewAll checks if the role can view all resources
func (r Role) CanViewAll() bool {
	return r.IsValid()
}

// Authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInsufficientRole   = errors.New("insufficient role for this operation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrUserExists         = fmt.Errorf("%w: user with this email already exists", ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrUserInactive       = errors.New("user account is inactive")
)
