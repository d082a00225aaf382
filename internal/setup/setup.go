package setup

import (
	"fmt"

	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/auth/local"
	"github.com/studyhive-dev/studyhive/internal/auth/supabase"
	"github.com/studyhive-dev/studyhive/internal/config"
	"github.com/studyhive-dev/studyhive/internal/handler"
	"github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/service"
	"github.com/studyhive-dev/studyhive/internal/storage/memory"
	"github.com/studyhive-dev/studyhive/internal/storage/pg"
)

// Backend is the full storage surface the application needs. Both the pg
// and the memory adapters satisfy it.
type Backend interface {
	local.UserStorage
	service.ProfileStorage
	service.QuestionStorage
	service.GroupStorage
	service.CommunityStorage
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Backend
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(cfg, storage)
	if err != nil {
		return nil, err
	}

	profile := service.NewProfile(storage)
	question := service.NewQuestion(storage, storage, &cfg.Public)
	group := service.NewGroup(storage)
	community := service.NewCommunity(storage, storage, &cfg.Public)

	h := handler.New(provider, profile, question, group, community)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(provider),
	}, nil
}

func newBackend(cfg *config.Config) (Backend, error) {
	switch cfg.Public.Storage {
	case "pg":
		return pg.New(cfg.Pg())
	case "memory":
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
}

func newProvider(cfg *config.Config, storage local.UserStorage) (auth.Provider, error) {
	switch cfg.Public.AuthProvider {
	case "supabase":
		return supabase.New(cfg.Supabase().URL, cfg.Supabase().ServiceRoleKey)
	case "local":
		return local.New(storage, cfg.JwtKey(), cfg.JwtTTL()), nil
	}
	return nil, fmt.Errorf("unknown auth provider %q", cfg.Public.AuthProvider)
}
