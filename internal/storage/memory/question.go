package memory

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
)

func (s *Storage) CreateQuestion(ctx context.Context, question domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := cloneQuestion(question)
	s.questions[q.Id] = &q
	s.questionOrder = append(s.questionOrder, q.Id)
	return nil
}

func (s *Storage) Question(ctx context.Context, id domain.QuestionId) (domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return domain.Question{}, notFound("Question")
	}
	out := cloneQuestion(*q)
	out.AuthorName = s.authorName(out.Author)
	return out, nil
}

func (s *Storage) Questions(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Question{}
	// newest first
	for i := len(s.questionOrder) - 1; i >= 0; i-- {
		q := s.questions[s.questionOrder[i]]
		if !matchesFilter(q, filter) {
			continue
		}
		clone := cloneQuestion(*q)
		clone.AuthorName = s.authorName(clone.Author)
		out = append(out, clone)
	}
	return out, nil
}

func (s *Storage) SimilarQuestions(ctx context.Context, question domain.Question, limit int) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Question{}
	for i := len(s.questionOrder) - 1; i >= 0 && len(out) < limit; i-- {
		q := s.questions[s.questionOrder[i]]
		if q.Id == question.Id {
			continue
		}
		if q.Subject != question.Subject && !anyTagOverlap(q.Tags, question.Tags) {
			continue
		}
		clone := cloneQuestion(*q)
		clone.AuthorName = s.authorName(clone.Author)
		out = append(out, clone)
	}
	return out, nil
}

func (s *Storage) AppendAnswer(ctx context.Context, questionId domain.QuestionId, answer domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionId]
	if !ok {
		return notFound("Question")
	}
	if len(q.Answers) >= q.AnswerLimit {
		return &internal_errors.ErrorWithStatusCode{Message: "Answer limit reached", StatusCode: http.StatusBadRequest}
	}
	q.Answers = append(q.Answers, answer)
	return nil
}

func (s *Storage) RemoveAnswer(ctx context.Context, questionId domain.QuestionId, answerId domain.AnswerId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionId]
	if !ok {
		return notFound("Question")
	}
	for i, answer := range q.Answers {
		if answer.Id == answerId {
			q.Answers = append(q.Answers[:i], q.Answers[i+1:]...)
			return nil
		}
	}
	return notFound("Answer")
}

func (s *Storage) ToggleSave(ctx context.Context, questionId domain.QuestionId, userId domain.UserId) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionId]
	if !ok {
		return false, notFound("Question")
	}
	if i := slices.Index(q.SavedBy, userId); i >= 0 {
		q.SavedBy = append(q.SavedBy[:i], q.SavedBy[i+1:]...)
		return false, nil
	}
	q.SavedBy = append(q.SavedBy, userId)
	return true, nil
}

func matchesFilter(q *domain.Question, filter domain.QuestionFilter) bool {
	if filter.Subject != "" && q.Subject != filter.Subject {
		return false
	}
	if len(filter.Tags) > 0 && !anyTagOverlap(q.Tags, filter.Tags) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(q.Title), needle) &&
			!strings.Contains(strings.ToLower(q.Content), needle) {
			return false
		}
	}
	return true
}

func anyTagOverlap(a, b []string) bool {
	for _, tag := range a {
		if slices.Contains(b, tag) {
			return true
		}
	}
	return false
}

func cloneQuestion(q domain.Question) domain.Question {
	q.Tags = slices.Clone(q.Tags)
	q.Answers = slices.Clone(q.Answers)
	q.SavedBy = slices.Clone(q.SavedBy)
	return q
}
