package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
	"github.com/studyhive-dev/studyhive/internal/service/utils"
)

type GroupService interface {
	Create(ctx context.Context, creation domain.GroupCreationData) (domain.Group, error)
	ListForUser(ctx context.Context, userId domain.UserId) ([]domain.Group, error)
}

type GroupStorage interface {
	CreateGroup(ctx context.Context, group domain.Group) error
	GroupsForUser(ctx context.Context, userId domain.UserId) ([]domain.Group, error)
}

type Group struct {
	storage GroupStorage
}

func NewGroup(storage GroupStorage) *Group {
	return &Group{storage: storage}
}

func (s *Group) Create(ctx context.Context, creation domain.GroupCreationData) (domain.Group, error) {
	name := utils.SanitizeText(creation.Name)
	description := utils.SanitizeText(creation.Description)
	subject := utils.SanitizeText(creation.Subject)
	if name == "" || description == "" || subject == "" {
		return domain.Group{}, &internal_errors.ErrorWithStatusCode{Message: "Name, description and subject are required", StatusCode: http.StatusBadRequest}
	}

	group := domain.Group{
		Id:          uuid.NewString(),
		Name:        name,
		Description: description,
		Subject:     subject,
		Owner:       creation.Owner,
		Members:     []domain.UserId{creation.Owner},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.storage.CreateGroup(ctx, group); err != nil {
		return domain.Group{}, err
	}
	return group, nil
}

func (s *Group) ListForUser(ctx context.Context, userId domain.UserId) ([]domain.Group, error) {
	return s.storage.GroupsForUser(ctx, userId)
}
