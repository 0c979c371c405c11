package http

import (
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

type ModerationHandler struct {
	modSvc service.ModerationService
}

func NewModerationHandler(modSvc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{modSvc: modSvc}
}

type createReportRequest struct {
	EntityKind  string `json:"entity_kind"`
	EntityID    int32  `json:"entity_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (h *ModerationHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	var req createReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	report, err := h.modSvc.CreateReport(r.Context(), callerID,
		domain.EntityKind(req.EntityKind), req.EntityID,
		domain.ReportReason(req.Reason), req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

func (h *ModerationHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := h.modSvc.GetReport(r.Context(), callerID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ModerationHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	page, pageSize := pagination(r)
	status := domain.ReportStatus(r.URL.Query().Get("status"))

	items, total, err := h.modSvc.ListReports(r.Context(), callerID, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

type resolveReportRequest struct {
	Status        string `json:"status"`
	AdminNote     string `json:"admin_note"`
	DeleteContent bool   `json:"delete_content"`
	BanUser       bool   `json:"ban_user"`
	BanReason     string `json:"ban_reason"`
}

func (h *ModerationHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req resolveReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	decision := domain.ReportDecision{
		Status:        domain.ReportStatus(req.Status),
		AdminNote:     req.AdminNote,
		DeleteContent: req.DeleteContent,
		BanUser:       req.BanUser,
		BanReason:     req.BanReason,
	}
	if err := h.modSvc.ResolveReport(r.Context(), callerID, id, decision); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type deleteContentRequest struct {
	EntityKind string `json:"entity_kind"`
	EntityID   int32  `json:"entity_id"`
	Reason     string `json:"reason"`
}

func (h *ModerationHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	var req deleteContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.modSvc.DeleteContent(r.Context(), callerID,
		domain.EntityKind(req.EntityKind), req.EntityID, req.Reason); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type banRequest struct {
	Reason string `json:"reason"`
}

func (h *ModerationHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	targetID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req banRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.modSvc.BanUser(r.Context(), callerID, targetID, req.Reason); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ModerationHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	targetID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.modSvc.UnbanUser(r.Context(), callerID, targetID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ModerationHandler) BanMentor(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	targetID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req banRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.modSvc.BanMentor(r.Context(), callerID, targetID, req.Reason); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ModerationHandler) UnbanMentor(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	targetID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.modSvc.UnbanMentor(r.Context(), callerID, targetID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
