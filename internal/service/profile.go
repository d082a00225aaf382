package service

import (
	"context"
	"time"

	"github.com/studyhive-dev/studyhive/internal/domain"
	"github.com/studyhive-dev/studyhive/internal/service/utils"
)

// Points awarded for submitting an answer. Removal of an answer does not
// reclaim points already awarded.
const AnswerPoints = 10

type ProfileService interface {
	Create(ctx context.Context, id domain.UserId, email domain.Email, name string) (domain.Profile, error)
	Get(ctx context.Context, id domain.UserId) (domain.Profile, error)
}

type ProfileStorage interface {
	SaveProfile(ctx context.Context, profile domain.Profile) error
	Profile(ctx context.Context, id domain.UserId) (domain.Profile, error)
	IncrementQuestionsAsked(ctx context.Context, id domain.UserId) error
	AwardAnswerPoints(ctx context.Context, id domain.UserId, points int) error
}

type Profile struct {
	storage ProfileStorage
}

func NewProfile(storage ProfileStorage) *Profile {
	return &Profile{storage: storage}
}

func (s *Profile) Create(ctx context.Context, id domain.UserId, email domain.Email, name string) (domain.Profile, error) {
	name = utils.SanitizeText(name)
	if name == "" {
		name = domain.AnonymousName
	}
	profile := domain.Profile{
		Id:        id,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *Profile) Get(ctx context.Context, id domain.UserId) (domain.Profile, error) {
	return s.storage.Profile(ctx, id)
}
