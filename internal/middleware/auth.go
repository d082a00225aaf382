package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/domain"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

// Key to store the resolved caller in the request context
type key int

const CallerKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	provider auth.Provider
}

func NewAuth(provider auth.Provider) *Auth {
	return &Auth{provider: provider}
}

// NeedAuth returns middleware that requires a valid bearer credential.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || token == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			caller, err := a.provider.Resolve(r.Context(), token)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCallerFromContext retrieves the caller from the context
func GetCallerFromContext(r *http.Request) *domain.Caller {
	caller, ok := r.Context().Value(CallerKey).(*domain.Caller)
	if !ok {
		return nil
	}
	return caller
}
