// Package supabase adapts the hosted Supabase auth service to the auth
// Provider port. Tokens are validated with the service role key, so this
// adapter must only run server-side.
package supabase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"

	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
	"github.com/studyhive-dev/studyhive/internal/logger"
)

type Provider struct {
	client *supa.Client
}

func New(url, serviceRoleKey string) (*Provider, error) {
	client, err := supa.NewClient(url, serviceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Provider{client: client}, nil
}

func (p *Provider) SignUp(ctx context.Context, email domain.Email, password domain.Password, name string) (domain.UserId, error) {
	resp, err := p.client.Auth.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        email,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"name": name},
	})
	if err != nil {
		logger.Log.Warn("supabase signup rejected", "err", err)
		return "", &internal_errors.ErrorWithStatusCode{Message: "Failed to create user", StatusCode: http.StatusBadRequest}
	}
	return resp.ID.String(), nil
}

func (p *Provider) SignIn(ctx context.Context, email domain.Email, password domain.Password) (auth.Session, error) {
	resp, err := p.client.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return auth.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	}
	return auth.Session{AccessToken: resp.AccessToken, UserId: resp.User.ID.String()}, nil
}

func (p *Provider) Resolve(ctx context.Context, token string) (*domain.Caller, error) {
	user, err := p.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	caller := &domain.Caller{Id: user.ID.String(), Email: user.Email}
	if name, ok := user.UserMetadata["name"].(string); ok {
		caller.Name = name
	}
	return caller, nil
}
