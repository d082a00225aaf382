package pg

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/studyhive-dev/studyhive/internal/domain"
)

func (s *Storage) CreateGroup(ctx context.Context, group domain.Group) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO groups (id, name, description, subject, owner_id, members, created)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, group.Id, group.Name, group.Description, group.Subject, group.Owner,
		pq.Array(group.Members), group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

func (s *Storage) GroupsForUser(ctx context.Context, userId domain.UserId) ([]domain.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, description, subject, owner_id, members, created
        FROM groups
        WHERE $1 = ANY(members)
        ORDER BY created, id
    `, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var group domain.Group
		var members pq.StringArray
		if err := rows.Scan(&group.Id, &group.Name, &group.Description, &group.Subject,
			&group.Owner, &members, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		group.Members = members
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return groups, nil
}
