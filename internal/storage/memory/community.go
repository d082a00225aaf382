package memory

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

func (s *Storage) Messages(ctx context.Context, country domain.Country, limit int) ([]domain.CommunityMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.community[country]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	out := make([]domain.CommunityMessage, len(msgs))
	for i, msg := range msgs {
		msg.AuthorName = s.authorName(msg.Author)
		out[i] = msg
	}
	return out, nil
}

func (s *Storage) CreateMessage(ctx context.Context, country domain.Country, msg domain.CommunityMessage, window time.Duration, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := throttleKey{author: msg.Author, country: country}
	if last, ok := s.throttle[key]; ok && msg.CreatedAt.Sub(last) < window {
		return &internal_errors.ErrorWithStatusCode{Message: "You can only post once per week", StatusCode: http.StatusTooManyRequests}
	}

	// prepend: list is kept newest first
	msgs := append([]domain.CommunityMessage{msg}, s.community[country]...)
	if len(msgs) > keep {
		msgs = slices.Clip(msgs[:keep])
	}
	s.community[country] = msgs
	s.throttle[key] = msg.CreatedAt
	return nil
}
