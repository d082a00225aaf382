package handler

import (
	"encoding/json"
	"net/http"

	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/logger"
	"github.com/studyhive-dev/studyhive/internal/service"
)

type Handler struct {
	provider  auth.Provider
	profile   service.ProfileService
	question  service.QuestionService
	group     service.GroupService
	community service.CommunityService
}

func New(provider auth.Provider, profile service.ProfileService, question service.QuestionService, group service.GroupService, community service.CommunityService) *Handler {
	return &Handler{provider, profile, question, group, community}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Log.Error("failed to encode response", "err", err)
	}
}
