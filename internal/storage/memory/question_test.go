package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

func newQuestion(id, author, subject string, tags []string, limit int) domain.Question {
	return domain.Question{
		Id:          id,
		Author:      author,
		Title:       "title " + id,
		Content:     "content " + id,
		Subject:     subject,
		Tags:        tags,
		AnswerLimit: limit,
		Answers:     []domain.Answer{},
		SavedBy:     []domain.UserId{},
		CreatedAt:   time.Now().UTC(),
	}
}

func TestQuestionNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Question(ctx, "missing")
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok)
	assert.Equal(t, 404, e.StatusCode)
}

func TestQuestionsFilter(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q1", "u1", "Mathematics", []string{"algebra"}, 3)))
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q2", "u1", "Physics", []string{"mechanics"}, 3)))
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q3", "u2", "Mathematics", []string{"geometry"}, 3)))

	t.Run("no filter returns newest first", func(t *testing.T) {
		questions, err := s.Questions(ctx, domain.QuestionFilter{})
		require.NoError(t, err)
		require.Len(t, questions, 3)
		assert.Equal(t, "q3", questions[0].Id)
		assert.Equal(t, "q1", questions[2].Id)
	})

	t.Run("subject exact match", func(t *testing.T) {
		questions, err := s.Questions(ctx, domain.QuestionFilter{Subject: "Physics"})
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "q2", questions[0].Id)
	})

	t.Run("any requested tag", func(t *testing.T) {
		questions, err := s.Questions(ctx, domain.QuestionFilter{Tags: []string{"algebra", "geometry"}})
		require.NoError(t, err)
		assert.Len(t, questions, 2)
	})

	t.Run("case-insensitive search on title or content", func(t *testing.T) {
		questions, err := s.Questions(ctx, domain.QuestionFilter{Search: "CONTENT Q2"})
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "q2", questions[0].Id)
	})

	t.Run("all filters combined", func(t *testing.T) {
		questions, err := s.Questions(ctx, domain.QuestionFilter{Subject: "Mathematics", Tags: []string{"algebra"}, Search: "title q1"})
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "q1", questions[0].Id)
	})
}

func TestQuestionsAuthorNameEnrichment(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveProfile(ctx, domain.Profile{Id: "u1", Email: "a@b.c", Name: "Alice"}))
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q1", "u1", "Math", nil, 3)))
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q2", "ghost", "Math", nil, 3)))

	questions, err := s.Questions(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, domain.AnonymousName, questions[0].AuthorName)
	assert.Equal(t, "Alice", questions[1].AuthorName)
}

func TestAppendAnswerQuota(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q1", "u1", "Math", nil, 1)))

	require.NoError(t, s.AppendAnswer(ctx, "q1", domain.Answer{Id: "a1", Author: "u2", Content: "x"}))

	err := s.AppendAnswer(ctx, "q1", domain.Answer{Id: "a2", Author: "u3", Content: "y"})
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok)
	assert.Equal(t, 400, e.StatusCode)
}

func TestAppendAnswerQuotaConcurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	const limit = 3
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q1", "u1", "Math", nil, limit)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// errors expected once the quota fills
			_ = s.AppendAnswer(ctx, "q1", domain.Answer{Id: fmt.Sprintf("a%d", i), Author: "u2", Content: "x"})
		}(i)
	}
	wg.Wait()

	q, err := s.Question(ctx, "q1")
	require.NoError(t, err)
	assert.Len(t, q.Answers, limit)
}

func TestRemoveAnswer(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q1", "u1", "Math", nil, 3)))
	require.NoError(t, s.AppendAnswer(ctx, "q1", domain.Answer{Id: "a1", Author: "u2", Content: "x"}))

	require.NoError(t, s.RemoveAnswer(ctx, "q1", "a1"))

	q, err := s.Question(ctx, "q1")
	require.NoError(t, err)
	assert.Empty(t, q.Answers)

	err = s.RemoveAnswer(ctx, "q1", "a1")
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok)
	assert.Equal(t, 404, e.StatusCode)
}

func TestToggleSaveDoubleNegation(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q1", "u1", "Math", nil, 3)))

	saved, err := s.ToggleSave(ctx, "q1", "u2")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = s.ToggleSave(ctx, "q1", "u2")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestSimilarQuestions(t *testing.T) {
	s := New()
	ctx := context.Background()

	source := newQuestion("q1", "u1", "Mathematics", []string{"algebra"}, 3)
	require.NoError(t, s.CreateQuestion(ctx, source))
	// q2 shares the subject, q3 shares a tag, q4 is unrelated
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q2", "u2", "Mathematics", []string{"calculus"}, 3)))
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q3", "u2", "Physics", []string{"algebra"}, 3)))
	require.NoError(t, s.CreateQuestion(ctx, newQuestion("q4", "u2", "History", []string{"renaissance"}, 3)))

	similar, err := s.SimilarQuestions(ctx, source, 10)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	// newest first, source excluded
	assert.Equal(t, "q3", similar[0].Id)
	assert.Equal(t, "q2", similar[1].Id)

	t.Run("limit respected", func(t *testing.T) {
		similar, err := s.SimilarQuestions(ctx, source, 1)
		require.NoError(t, err)
		assert.Len(t, similar, 1)
	})
}
