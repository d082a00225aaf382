package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studyhive-dev/studyhive/internal/config"
	"github.com/studyhive-dev/studyhive/internal/domain"
	internal_errors "github.com/studyhive-dev/studyhive/internal/errors"
	"github.com/studyhive-dev/studyhive/internal/logger"
	"github.com/studyhive-dev/studyhive/internal/service/utils"
)

type QuestionService interface {
	Create(ctx context.Context, creation domain.QuestionCreationData) (domain.Question, error)
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)
	SubmitAnswer(ctx context.Context, questionId domain.QuestionId, author domain.UserId, content string) (domain.Answer, error)
	RemoveAnswer(ctx context.Context, questionId domain.QuestionId, answerId domain.AnswerId, requester domain.UserId) error
	ToggleSave(ctx context.Context, questionId domain.QuestionId, userId domain.UserId) (bool, error)
	FindSimilar(ctx context.Context, questionId domain.QuestionId) ([]domain.Question, error)
}

type QuestionStorage interface {
	CreateQuestion(ctx context.Context, question domain.Question) error
	Question(ctx context.Context, id domain.QuestionId) (domain.Question, error)
	// Questions returns questions matching all provided filters,
	// newest-first, with AuthorName enriched.
	Questions(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)
	// SimilarQuestions returns up to limit questions sharing the subject or
	// at least one tag with the given question, newest-first, excluding it.
	SimilarQuestions(ctx context.Context, question domain.Question, limit int) ([]domain.Question, error)
	// AppendAnswer must enforce the answer quota atomically: two concurrent
	// appends may never push a question past its limit.
	AppendAnswer(ctx context.Context, questionId domain.QuestionId, answer domain.Answer) error
	RemoveAnswer(ctx context.Context, questionId domain.QuestionId, answerId domain.AnswerId) error
	ToggleSave(ctx context.Context, questionId domain.QuestionId, userId domain.UserId) (bool, error)
}

type Question struct {
	storage  QuestionStorage
	profiles ProfileStorage
	cfg      *config.Public
}

func NewQuestion(storage QuestionStorage, profiles ProfileStorage, cfg *config.Public) *Question {
	return &Question{storage: storage, profiles: profiles, cfg: cfg}
}

func (s *Question) Create(ctx context.Context, creation domain.QuestionCreationData) (domain.Question, error) {
	title := utils.SanitizeText(creation.Title)
	content := utils.SanitizeText(creation.Content)
	subject := utils.SanitizeText(creation.Subject)
	if title == "" || content == "" || subject == "" {
		return domain.Question{}, &internal_errors.ErrorWithStatusCode{Message: "Title, content and subject are required", StatusCode: http.StatusBadRequest}
	}

	tags := utils.SanitizeTags(creation.Tags)
	if len(tags) > s.cfg.MaxQuestionTags {
		return domain.Question{}, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("At most %d tags allowed", s.cfg.MaxQuestionTags), StatusCode: http.StatusBadRequest}
	}

	answerLimit := creation.AnswerLimit
	if answerLimit == 0 {
		answerLimit = s.cfg.DefaultAnswerLimit
	}
	if answerLimit < 1 {
		return domain.Question{}, &internal_errors.ErrorWithStatusCode{Message: "Answer limit must be positive", StatusCode: http.StatusBadRequest}
	}

	question := domain.Question{
		Id:          uuid.NewString(),
		Author:      creation.Author,
		Title:       title,
		Content:     content,
		Subject:     subject,
		Tags:        tags,
		AnswerLimit: answerLimit,
		Answers:     []domain.Answer{},
		SavedBy:     []domain.UserId{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.storage.CreateQuestion(ctx, question); err != nil {
		return domain.Question{}, err
	}

	// Counter update failures do not fail the request
	if err := s.profiles.IncrementQuestionsAsked(ctx, creation.Author); err != nil {
		logger.Log.Error("failed to increment questions asked", "user", creation.Author, "err", err)
	}

	question.AuthorName = s.authorName(ctx, creation.Author)
	return question, nil
}

func (s *Question) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	return s.storage.Questions(ctx, filter)
}

func (s *Question) SubmitAnswer(ctx context.Context, questionId domain.QuestionId, author domain.UserId, content string) (domain.Answer, error) {
	content = utils.SanitizeText(content)
	if content == "" {
		return domain.Answer{}, &internal_errors.ErrorWithStatusCode{Message: "Answer content is required", StatusCode: http.StatusBadRequest}
	}

	answer := domain.Answer{
		Id:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.AppendAnswer(ctx, questionId, answer); err != nil {
		return domain.Answer{}, err
	}

	if err := s.profiles.AwardAnswerPoints(ctx, author, AnswerPoints); err != nil {
		logger.Log.Error("failed to award answer points", "user", author, "err", err)
	}
	return answer, nil
}

func (s *Question) RemoveAnswer(ctx context.Context, questionId domain.QuestionId, answerId domain.AnswerId, requester domain.UserId) error {
	question, err := s.storage.Question(ctx, questionId)
	if err != nil {
		return err
	}
	if question.Author != requester {
		return &internal_errors.ErrorWithStatusCode{Message: "Only question owner can remove answers", StatusCode: http.StatusForbidden}
	}
	// Previously awarded points are intentionally not reclaimed
	return s.storage.RemoveAnswer(ctx, questionId, answerId)
}

func (s *Question) ToggleSave(ctx context.Context, questionId domain.QuestionId, userId domain.UserId) (bool, error) {
	return s.storage.ToggleSave(ctx, questionId, userId)
}

func (s *Question) FindSimilar(ctx context.Context, questionId domain.QuestionId) ([]domain.Question, error) {
	question, err := s.storage.Question(ctx, questionId)
	if err != nil {
		return nil, err
	}
	return s.storage.SimilarQuestions(ctx, question, s.cfg.SimilarLimit)
}

func (s *Question) authorName(ctx context.Context, id domain.UserId) string {
	profile, err := s.profiles.Profile(ctx, id)
	if err != nil {
		return domain.AnonymousName
	}
	return profile.Name
}
