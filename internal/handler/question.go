package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studyhive-dev/studyhive/internal/api"
	"github.com/studyhive-dev/studyhive/internal/domain"
	mw "github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	var body api.CreateQuestionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creation := domain.QuestionCreationData{
		Author:  caller.Id,
		Title:   body.Title,
		Content: body.Content,
		Subject: body.Subject,
		Tags:    body.Tags,
	}
	if body.AnswerLimit != nil {
		creation.AnswerLimit = *body.AnswerLimit
	}

	question, err := h.question.Create(r.Context(), creation)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.QuestionResponse{Question: question})
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	filter := domain.QuestionFilter{
		Subject: r.URL.Query().Get("subject"),
		Search:  r.URL.Query().Get("search"),
	}
	if tags := r.URL.Query().Get("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	questions, err := h.question.List(r.Context(), filter)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.QuestionListResponse{Questions: questions})
}

func (h *Handler) ToggleSaveQuestion(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	questionId := chi.URLParam(r, "question")

	saved, err := h.question.ToggleSave(r.Context(), questionId, caller.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.SaveResponse{Saved: saved})
}

func (h *Handler) SimilarQuestions(w http.ResponseWriter, r *http.Request) {
	questionId := chi.URLParam(r, "question")

	questions, err := h.question.FindSimilar(r.Context(), questionId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.QuestionListResponse{Questions: questions})
}
