package http

import (
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

type MentorHandler struct {
	mentorSvc service.MentorService
}

func NewMentorHandler(mentorSvc service.MentorService) *MentorHandler {
	return &MentorHandler{mentorSvc: mentorSvc}
}

func (h *MentorHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	var profile domain.MentorProfile
	if !decodeBody(w, r, &profile) {
		return
	}

	if err := h.mentorSvc.CreateMentorProfile(r.Context(), callerID, &profile); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, profile)
}

func (h *MentorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.mentorSvc.GetMentorProfile(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *MentorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var profile domain.MentorProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	profile.ID = id

	if err := h.mentorSvc.UpdateMentorProfile(r.Context(), callerID, &profile); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *MentorHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	if err := h.mentorSvc.DeleteMentorProfile(r.Context(), callerID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type mentorshipRequestBody struct {
	Message string `json:"message"`
}

func (h *MentorHandler) RequestMentorship(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	mentorProfileID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req mentorshipRequestBody
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.mentorSvc.RequestMentorship(r.Context(), callerID, mentorProfileID, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *MentorHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.mentorSvc.AcceptMentorship(r.Context(), callerID, requestID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *MentorHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.mentorSvc.DeclineMentorship(r.Context(), callerID, requestID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *MentorHandler) EndMentorship(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.mentorSvc.EndMentorship(r.Context(), callerID, requestID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *MentorHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	requests, err := h.mentorSvc.ListMentorshipRequests(r.Context(), callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}
