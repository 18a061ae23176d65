package handler

import (
	"context"
	"net/http"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/adapter/http/middleware"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/usecase"
)

// Authenticator checks credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

// AuthObserver counts login attempts.
type AuthObserver interface {
	AuthAttempt(ok bool)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	users         Authenticator
	tokens        TokenIssuer
	observer      AuthObserver
	tokenLifetime int64
}

// NewAuthHandler creates a new auth handler. observer may be nil.
func NewAuthHandler(users Authenticator, tokens TokenIssuer, tokenLifetimeSeconds int64, observer AuthObserver) *AuthHandler {
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		observer:      observer,
		tokenLifetime: tokenLifetimeSeconds,
	}
}

// Login checks the credentials against the user store and issues a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, err, "invalid login request")
		return
	}

	user, err := h.users.Authenticate(r.Context(), input)
	h.observe(err == nil)
	if err != nil {
		writeDomainError(w, err, "authentication failed")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: h.tokenLifetime,
		User:      dto.UserFromDomain(user),
	})
}

// GetCurrentUser returns the current authenticated user
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

func (h *AuthHandler) observe(ok bool) {
	if h.observer != nil {
		h.observer.AuthAttempt(ok)
	}
}
