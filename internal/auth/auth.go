// Package auth defines the identity provider port. Production resolves
// credentials against a managed provider (Supabase); development and tests
// use a local provider issuing its own tokens.
package auth

import (
	"context"

	"github.com/studyhive-dev/studyhive/internal/domain"
)

type Session struct {
	AccessToken string
	UserId      domain.UserId
}

type Provider interface {
	// SignUp registers a new identity and returns its user id.
	SignUp(ctx context.Context, email domain.Email, password domain.Password, name string) (domain.UserId, error)
	// SignIn exchanges credentials for an access token.
	SignIn(ctx context.Context, email domain.Email, password domain.Password) (Session, error)
	// Resolve validates an opaque bearer credential and returns the caller.
	Resolve(ctx context.Context, token string) (*domain.Caller, error)
}
