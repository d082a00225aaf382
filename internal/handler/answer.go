package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhive-dev/studyhive/internal/api"
	mw "github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	questionId := chi.URLParam(r, "question")

	var body api.CreateAnswerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	answer, err := h.question.SubmitAnswer(r.Context(), questionId, caller.Id, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.AnswerResponse{Answer: answer})
}

func (h *Handler) RemoveAnswer(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	questionId := chi.URLParam(r, "question")
	answerId := chi.URLParam(r, "answer")

	if err := h.question.RemoveAnswer(r.Context(), questionId, answerId, caller.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.RemoveAnswerResponse{Success: true})
}
