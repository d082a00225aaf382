// Package memory is the in-memory storage adapter. It backs tests and
// local development; the pg package is the persistent twin. Every method
// holds the store mutex for the whole read-modify-write, which closes the
// quota and throttle races the same way the pg adapter does with
// conditional writes.
package memory

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/studyhive-dev/studyhive/internal/auth/local"
	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

type throttleKey struct {
	author  domain.UserId
	country domain.Country
}

type Storage struct {
	mu sync.RWMutex

	users    map[domain.Email]local.User
	profiles map[domain.UserId]domain.Profile

	questions     map[domain.QuestionId]*domain.Question
	questionOrder []domain.QuestionId // insertion order, oldest first

	groups     map[domain.GroupId]domain.Group
	groupOrder []domain.GroupId

	community map[domain.Country][]domain.CommunityMessage // newest first
	throttle  map[throttleKey]time.Time
}

func New() *Storage {
	return &Storage{
		users:     make(map[domain.Email]local.User),
		profiles:  make(map[domain.UserId]domain.Profile),
		questions: make(map[domain.QuestionId]*domain.Question),
		groups:    make(map[domain.GroupId]domain.Group),
		community: make(map[domain.Country][]domain.CommunityMessage),
		throttle:  make(map[throttleKey]time.Time),
	}
}

// Cleanup exists so the memory backend can stand in for pg at setup time.
func (s *Storage) Cleanup() error {
	return nil
}

func notFound(what string) error {
	return &internal_errors.ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

// local.UserStorage

func (s *Storage) SaveUser(ctx context.Context, user local.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
	}
	s.users[user.Email] = user
	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (local.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[email]
	if !ok {
		return local.User{}, notFound("User")
	}
	return user, nil
}

// service.ProfileStorage

func (s *Storage) SaveProfile(ctx context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.Id] = profile
	return nil
}

func (s *Storage) Profile(ctx context.Context, id domain.UserId) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, notFound("User")
	}
	return profile, nil
}

func (s *Storage) IncrementQuestionsAsked(ctx context.Context, id domain.UserId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[id]
	if !ok {
		return notFound("User")
	}
	profile.QuestionsAsked++
	s.profiles[id] = profile
	return nil
}

func (s *Storage) AwardAnswerPoints(ctx context.Context, id domain.UserId, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[id]
	if !ok {
		return notFound("User")
	}
	profile.Points += points
	profile.QuestionsAnswered++
	s.profiles[id] = profile
	return nil
}

// authorName must be called with the mutex held.
func (s *Storage) authorName(id domain.UserId) string {
	if profile, ok := s.profiles[id]; ok {
		return profile.Name
	}
	return domain.AnonymousName
}
