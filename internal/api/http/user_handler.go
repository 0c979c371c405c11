package http

import (
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type userResponse struct {
	User   *domain.User   `json:"user"`
	Badges []domain.Badge `json:"badges"`
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	user, badges, err := h.userSvc.GetUser(r.Context(), callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse{User: user, Badges: badges})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.userSvc.GetProfile(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	var profile domain.Profile
	if !decodeBody(w, r, &profile) {
		return
	}

	if err := h.userSvc.UpsertProfile(r.Context(), callerID, &profile); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.userSvc.DeleteProfile(r.Context(), callerID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
