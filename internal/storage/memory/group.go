package memory

import (
	"context"
	"slices"

	"github.com/studyhive-dev/studyhive/internal/domain"
)

func (s *Storage) CreateGroup(ctx context.Context, group domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group.Members = slices.Clone(group.Members)
	s.groups[group.Id] = group
	s.groupOrder = append(s.groupOrder, group.Id)
	return nil
}

func (s *Storage) GroupsForUser(ctx context.Context, userId domain.UserId) ([]domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Group{}
	for _, id := range s.groupOrder {
		group := s.groups[id]
		if slices.Contains(group.Members, userId) {
			group.Members = slices.Clone(group.Members)
			out = append(out, group)
		}
	}
	return out, nil
}
