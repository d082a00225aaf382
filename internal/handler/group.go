package handler

import (
	"net/http"

	"github.com/studyhive-dev/studyhive/internal/api"
	"github.com/studyhive-dev/studyhive/internal/domain"
	mw "github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	var body api.CreateGroupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	group, err := h.group.Create(r.Context(), domain.GroupCreationData{
		Owner:       caller.Id,
		Name:        body.Name,
		Description: body.Description,
		Subject:     body.Subject,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.GroupResponse{Group: group})
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	caller := mw.GetCallerFromContext(r)
	if caller == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	groups, err := h.group.ListForUser(r.Context(), caller.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.GroupListResponse{Groups: groups})
}
