package pg

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

func (s *Storage) Messages(ctx context.Context, country domain.Country, limit int) ([]domain.CommunityMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT m.id, m.author_id, COALESCE(p.name, 'Anonymous'), m.content, m.created
        FROM community_messages m
        LEFT JOIN profiles p ON p.id = m.author_id
        WHERE m.country = $1
        ORDER BY m.created DESC, m.id DESC
        LIMIT $2
    `, country, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch community messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.CommunityMessage{}
	for rows.Next() {
		var msg domain.CommunityMessage
		if err := rows.Scan(&msg.Id, &msg.Author, &msg.AuthorName, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan community message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return messages, nil
}

func (s *Storage) CreateMessage(ctx context.Context, country domain.Country, msg domain.CommunityMessage, window time.Duration, keep int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Conditional upsert on the throttle row: zero rows affected means the
	// caller posted within the window. Concurrent posts race on the primary
	// key, so at most one wins.
	res, err := tx.ExecContext(ctx, `
        INSERT INTO community_post_throttle (author_id, country, last_post)
        VALUES ($1, $2, $3)
        ON CONFLICT (author_id, country) DO UPDATE SET last_post = EXCLUDED.last_post
        WHERE community_post_throttle.last_post <= $3 - make_interval(secs => $4)
    `, msg.Author, country, msg.CreatedAt, window.Seconds())
	if err != nil {
		return fmt.Errorf("failed to update post throttle: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "You can only post once per week", StatusCode: http.StatusTooManyRequests}
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO community_messages (id, country, author_id, content, created)
        VALUES ($1, $2, $3, $4, $5)
    `, msg.Id, country, msg.Author, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert community message: %w", err)
	}

	// Retention: drop everything older than the newest `keep` messages
	_, err = tx.ExecContext(ctx, `
        DELETE FROM community_messages
        WHERE country = $1 AND id NOT IN (
            SELECT id FROM community_messages
            WHERE country = $1
            ORDER BY created DESC, id DESC
            LIMIT $2
        )
    `, country, keep)
	if err != nil {
		return fmt.Errorf("failed to trim community messages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
