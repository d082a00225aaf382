package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studyhive-dev/studyhive/internal/config"
	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
	"github.com/studyhive-dev/studyhive/internal/service/utils"
)

type CommunityService interface {
	Messages(ctx context.Context, country domain.Country) ([]domain.CommunityMessage, error)
	Post(ctx context.Context, country domain.Country, author domain.UserId, content string) (domain.CommunityMessage, error)
}

type CommunityStorage interface {
	// Messages returns up to limit messages for the country, newest-first,
	// with AuthorName enriched.
	Messages(ctx context.Context, country domain.Country, limit int) ([]domain.CommunityMessage, error)
	// CreateMessage must apply the posting throttle, the insert and the
	// retention trim as one atomic step: a rejected post leaves no state
	// change behind.
	CreateMessage(ctx context.Context, country domain.Country, msg domain.CommunityMessage, window time.Duration, keep int) error
}

type Community struct {
	storage  CommunityStorage
	profiles ProfileStorage
	cfg      *config.Public
}

func NewCommunity(storage CommunityStorage, profiles ProfileStorage, cfg *config.Public) *Community {
	return &Community{storage: storage, profiles: profiles, cfg: cfg}
}

func (s *Community) Messages(ctx context.Context, country domain.Country) ([]domain.CommunityMessage, error) {
	return s.storage.Messages(ctx, country, s.cfg.CommunityRetention)
}

func (s *Community) Post(ctx context.Context, country domain.Country, author domain.UserId, content string) (domain.CommunityMessage, error) {
	content = utils.SanitizeText(content)
	if content == "" {
		return domain.CommunityMessage{}, &internal_errors.ErrorWithStatusCode{Message: "Message content is required", StatusCode: http.StatusBadRequest}
	}

	msg := domain.CommunityMessage{
		Id:         uuid.NewString(),
		Author:     author,
		AuthorName: s.authorName(ctx, author),
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.storage.CreateMessage(ctx, country, msg, s.cfg.CommunityPostWindow, s.cfg.CommunityRetention); err != nil {
		return domain.CommunityMessage{}, err
	}
	return msg, nil
}

func (s *Community) authorName(ctx context.Context, id domain.UserId) string {
	profile, err := s.profiles.Profile(ctx, id)
	if err != nil {
		return domain.AnonymousName
	}
	return profile.Name
}
