package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhive-dev/studyhive/internal/api"
	mw "github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func (h *Handler) ListCommunityMessages(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")

	messages, err := h.community.Messages(r.Context(), country)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.CommunityMessageListResponse{Messages: messages})
}

func (h *Handler) PostCommunityMessage(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	country := chi.URLParam(r, "country")

	var body api.PostCommunityRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.community.Post(r.Context(), country, caller.Id, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.CommunityMessageResponse{Message: msg})
}
