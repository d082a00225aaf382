package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

func (s *Storage) SaveProfile(ctx context.Context, profile domain.Profile) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO profiles (id, email, name, points, questions_asked, questions_answered, created)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, profile.Id, profile.Email, profile.Name, profile.Points, profile.QuestionsAsked, profile.QuestionsAnswered, profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (s *Storage) Profile(ctx context.Context, id domain.UserId) (domain.Profile, error) {
	var profile domain.Profile
	err := s.db.QueryRowContext(ctx, `
        SELECT id, email, name, points, questions_asked, questions_answered, created
        FROM profiles WHERE id = $1
    `, id).Scan(
		&profile.Id, &profile.Email, &profile.Name,
		&profile.Points, &profile.QuestionsAsked, &profile.QuestionsAnswered, &profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

func (s *Storage) IncrementQuestionsAsked(ctx context.Context, id domain.UserId) error {
	return s.updateCounters(ctx, id, `
        UPDATE profiles SET questions_asked = questions_asked + 1 WHERE id = $1
    `)
}

func (s *Storage) AwardAnswerPoints(ctx context.Context, id domain.UserId, points int) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE profiles
        SET points = points + $2, questions_answered = questions_answered + 1
        WHERE id = $1
    `, id, points)
	if err != nil {
		return fmt.Errorf("failed to award points: %w", err)
	}
	return checkProfileUpdated(res)
}

func (s *Storage) updateCounters(ctx context.Context, id domain.UserId, query string) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update profile counters: %w", err)
	}
	return checkProfileUpdated(res)
}

func checkProfileUpdated(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
