package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/domain"
	"github.com/iho/caisse/internal/infrastructure/auth"
	"github.com/iho/caisse/internal/usecase"
)

type authenticatorStub struct {
	fn func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

func (s *authenticatorStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return s.fn(ctx, input)
}

type authCounter struct{ ok, failed int }

func (c *authCounter) AuthAttempt(ok bool) {
	if ok {
		c.ok++
	} else {
		c.failed++
	}
}

func TestAuthHandler_Login(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	counter := &authCounter{}
	h := NewAuthHandler(&authenticatorStub{
		fn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			if input.Password != "correct horse" {
				return nil, domain.ErrInvalidCredentials
			}
			return &domain.User{ID: "u1", Email: input.Email, Role: domain.RoleCashier, Active: true, HashedPassword: "x"}, nil
		},
	}, manager, int64(time.Hour.Seconds()), counter)

	rr := serve(t, http.MethodPost, "/user/login", "/user/login",
		`{"email":"caisse@boutique.fr","password":"correct horse"}`, h.Login)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[dto.LoginResponse](t, rr)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, domain.RoleCashier, resp.User.Role)
	assert.NotContains(t, rr.Body.String(), "hashed")

	claims, err := manager.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	rr = serve(t, http.MethodPost, "/user/login", "/user/login",
		`{"email":"caisse@boutique.fr","password":"wrong"}`, h.Login)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(t, http.MethodPost, "/user/login", "/user/login", `{"email":""}`, h.Login)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Equal(t, 1, counter.ok)
	assert.Equal(t, 1, counter.failed)
}

func TestAuthHandler_GetCurrentUserWithoutAuth(t *testing.T) {
	h := NewAuthHandler(nil, nil, 0, nil)

	rr := serve(t, http.MethodGet, "/user/me", "/user/me", nil, h.GetCurrentUser)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
