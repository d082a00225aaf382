package api

import "github.com/studyhive-dev/studyhive/internal/domain"

// Request DTOs

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateQuestionRequest struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Subject     string   `json:"subject" validate:"required"`
	Tags        []string `json:"tags,omitempty"`
	AnswerLimit *int     `json:"answerLimit,omitempty"`
}

type CreateAnswerRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
}

type PostCommunityRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type SignupResponse struct {
	UserId domain.UserId `json:"user_id"`
}

type SigninResponse struct {
	AccessToken string        `json:"access_token"`
	UserId      domain.UserId `json:"user_id"`
}

type ProfileResponse struct {
	User domain.Profile `json:"user"`
}

type QuestionResponse struct {
	Question domain.Question `json:"question"`
}

type QuestionListResponse struct {
	Questions []domain.Question `json:"questions"`
}

type AnswerResponse struct {
	Answer domain.Answer `json:"answer"`
}

type RemoveAnswerResponse struct {
	Success bool `json:"success"`
}

type SaveResponse struct {
	Saved bool `json:"saved"`
}

type GroupResponse struct {
	Group domain.Group `json:"group"`
}

type GroupListResponse struct {
	Groups []domain.Group `json:"groups"`
}

type CommunityMessageResponse struct {
	Message domain.CommunityMessage `json:"message"`
}

type CommunityMessageListResponse struct {
	Messages []domain.CommunityMessage `json:"messages"`
}
