package dto

import (
	"strings"

	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() (usecase.AuthenticateInput, error) {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return usecase.AuthenticateInput{}, domain.ErrRequiredField
	}
	return usecase.AuthenticateInput{Email: r.Email, Password: r.Password}, nil
}

// UserInfo represents user information
type UserInfo struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name,omitempty"`
	Role  domain.Role `json:"role"`
}

// UserFromDomain converts a user, leaving out the password hash.
func UserFromDomain(u *domain.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int64    `json:"expires_in"`
	User      UserInfo `json:"user"`
}
