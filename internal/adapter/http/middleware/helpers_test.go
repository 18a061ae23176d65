package middleware

import (
	"context"
	"net/http"

	"github.com/iho/caisse/internal/domain"
)

func withUser(r *http.Request, user *domain.User) context.Context {
	return context.WithValue(r.Context(), UserContextKey, user)
}
