package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

const questionColumns = `
    q.id, q.author_id, COALESCE(p.name, 'Anonymous'), q.title, q.content,
    q.subject, q.tags, q.answer_limit, q.saved_by, q.created
`

func (s *Storage) CreateQuestion(ctx context.Context, question domain.Question) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO questions (id, author_id, title, content, subject, tags, answer_limit, saved_by, created)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, question.Id, question.Author, question.Title, question.Content, question.Subject,
		pq.Array(question.Tags), question.AnswerLimit, pq.Array(question.SavedBy), question.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

func (s *Storage) Question(ctx context.Context, id domain.QuestionId) (domain.Question, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT `+questionColumns+`
        FROM questions q
        LEFT JOIN profiles p ON p.id = q.author_id
        WHERE q.id = $1
    `, id)

	question, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Question{}, &internal_errors.ErrorWithStatusCode{Message: "Question not found", StatusCode: http.StatusNotFound}
		}
		return domain.Question{}, fmt.Errorf("failed to fetch question: %w", err)
	}

	if err := s.attachAnswers(ctx, []*domain.Question{&question}); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (s *Storage) Questions(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	tags := filter.Tags
	if tags == nil {
		tags = []string{}
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+questionColumns+`
        FROM questions q
        LEFT JOIN profiles p ON p.id = q.author_id
        WHERE ($1 = '' OR q.subject = $1)
          AND (cardinality($2::text[]) = 0 OR q.tags && $2::text[])
          AND ($3 = '' OR q.title ILIKE '%' || $3 || '%' OR q.content ILIKE '%' || $3 || '%')
        ORDER BY q.created DESC, q.id
    `, filter.Subject, pq.Array(tags), filter.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	defer rows.Close()

	return s.collectQuestions(ctx, rows)
}

func (s *Storage) SimilarQuestions(ctx context.Context, question domain.Question, limit int) ([]domain.Question, error) {
	tags := question.Tags
	if tags == nil {
		tags = []string{}
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+questionColumns+`
        FROM questions q
        LEFT JOIN profiles p ON p.id = q.author_id
        WHERE q.id <> $1 AND (q.subject = $2 OR q.tags && $3::text[])
        ORDER BY q.created DESC, q.id
        LIMIT $4
    `, question.Id, question.Subject, pq.Array(tags), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch similar questions: %w", err)
	}
	defer rows.Close()

	return s.collectQuestions(ctx, rows)
}

func (s *Storage) AppendAnswer(ctx context.Context, questionId domain.QuestionId, answer domain.Answer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the question row so concurrent appends serialize on the quota check
	var answerLimit int
	err = tx.QueryRowContext(ctx, `
        SELECT answer_limit FROM questions WHERE id = $1 FOR UPDATE
    `, questionId).Scan(&answerLimit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &internal_errors.ErrorWithStatusCode{Message: "Question not found", StatusCode: http.StatusNotFound}
		}
		return fmt.Errorf("failed to lock question: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx, `
        SELECT count(*) FROM answers WHERE question_id = $1
    `, questionId).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count answers: %w", err)
	}
	if count >= answerLimit {
		return &internal_errors.ErrorWithStatusCode{Message: "Answer limit reached", StatusCode: http.StatusBadRequest}
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO answers (id, question_id, author_id, content, created)
        VALUES ($1, $2, $3, $4, $5)
    `, answer.Id, questionId, answer.Author, answer.Content, answer.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert answer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) RemoveAnswer(ctx context.Context, questionId domain.QuestionId, answerId domain.AnswerId) error {
	res, err := s.db.ExecContext(ctx, `
        DELETE FROM answers WHERE id = $1 AND question_id = $2
    `, answerId, questionId)
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Answer not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) ToggleSave(ctx context.Context, questionId domain.QuestionId, userId domain.UserId) (bool, error) {
	var saved bool
	err := s.db.QueryRowContext(ctx, `
        UPDATE questions
        SET saved_by = CASE
            WHEN $2 = ANY(saved_by) THEN array_remove(saved_by, $2)
            ELSE array_append(saved_by, $2)
        END
        WHERE id = $1
        RETURNING $2 = ANY(saved_by)
    `, questionId, userId).Scan(&saved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, &internal_errors.ErrorWithStatusCode{Message: "Question not found", StatusCode: http.StatusNotFound}
		}
		return false, fmt.Errorf("failed to toggle save: %w", err)
	}
	return saved, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (domain.Question, error) {
	var question domain.Question
	var tags, savedBy pq.StringArray
	err := row.Scan(
		&question.Id, &question.Author, &question.AuthorName, &question.Title, &question.Content,
		&question.Subject, &tags, &question.AnswerLimit, &savedBy, &question.CreatedAt,
	)
	if err != nil {
		return domain.Question{}, err
	}
	question.Tags = tags
	question.SavedBy = savedBy
	question.Answers = []domain.Answer{}
	return question, nil
}

func (s *Storage) collectQuestions(ctx context.Context, rows *sql.Rows) ([]domain.Question, error) {
	questions := []domain.Question{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	refs := make([]*domain.Question, len(questions))
	for i := range questions {
		refs[i] = &questions[i]
	}
	if err := s.attachAnswers(ctx, refs); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *Storage) attachAnswers(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	ids := make([]string, len(questions))
	byId := make(map[domain.QuestionId]*domain.Question, len(questions))
	for i, q := range questions {
		ids[i] = q.Id
		byId[q.Id] = q
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, question_id, author_id, content, created
        FROM answers
        WHERE question_id = ANY($1)
        ORDER BY created, id
    `, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var answer domain.Answer
		var questionId domain.QuestionId
		if err := rows.Scan(&answer.Id, &questionId, &answer.Author, &answer.Content, &answer.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan answer: %w", err)
		}
		if q, ok := byId[questionId]; ok {
			q.Answers = append(q.Answers, answer)
		}
	}
	return rows.Err()
}
