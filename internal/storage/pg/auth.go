package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/studyhive-dev/studyhive/internal/auth/local"
	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

func (s *Storage) SaveUser(ctx context.Context, user local.User) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO auth_users (id, email, pass_hash, created)
        VALUES ($1, $2, $3, $4)
    `, user.Id, user.Email, user.PassHash, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (local.User, error) {
	var user local.User
	err := s.db.QueryRowContext(ctx, `
        SELECT id, email, pass_hash, created FROM auth_users WHERE email = $1
    `, email).Scan(&user.Id, &user.Email, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return local.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return local.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}
