package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studyhive-dev/studyhive/internal/api"
	mw "github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "id")

	profile, err := h.profile.Get(r.Context(), userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ProfileResponse{User: profile})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	profile, err := h.profile.Get(r.Context(), caller.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ProfileResponse{User: profile})
}
