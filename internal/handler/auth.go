package handler

import (
	"net/http"

	"github.com/studyhive-dev/studyhive/internal/api"
	"github.com/studyhive-dev/studyhive/internal/logger"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SignupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	userId, err := h.provider.SignUp(r.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if _, err := h.profile.Create(r.Context(), userId, body.Email, body.Name); err != nil {
		logger.Log.Error("failed to create profile", "user", userId, "err", err)
		http.Error(w, "Failed to create user profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, api.SignupResponse{UserId: userId})
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var body api.SigninRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	session, err := h.provider.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.SigninResponse{AccessToken: session.AccessToken, UserId: session.UserId})
}
