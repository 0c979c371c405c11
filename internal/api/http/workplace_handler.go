package http

import (
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

type WorkplaceHandler struct {
	wpSvc service.WorkplaceService
}

func NewWorkplaceHandler(wpSvc service.WorkplaceService) *WorkplaceHandler {
	return &WorkplaceHandler{wpSvc: wpSvc}
}

func (h *WorkplaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	var wp domain.Workplace
	if !decodeBody(w, r, &wp) {
		return
	}

	if err := h.wpSvc.CreateWorkplace(r.Context(), callerID, &wp); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wp)
}

func (h *WorkplaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	wp, err := h.wpSvc.GetWorkplace(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wp)
}

func (h *WorkplaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	name := r.URL.Query().Get("name")
	industry := r.URL.Query().Get("industry")

	items, total, err := h.wpSvc.SearchWorkplaces(r.Context(), name, industry, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

func (h *WorkplaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var wp domain.Workplace
	if !decodeBody(w, r, &wp) {
		return
	}
	wp.ID = id

	if err := h.wpSvc.UpdateWorkplace(r.Context(), callerID, &wp); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wp)
}

func (h *WorkplaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.wpSvc.DeleteWorkplace(r.Context(), callerID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *WorkplaceHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.wpSvc.ListPolicies(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, policies)
}

type declarePoliciesRequest struct {
	PolicyIDs []int32 `json:"policy_ids"`
}

func (h *WorkplaceHandler) DeclarePolicies(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req declarePoliciesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.wpSvc.DeclarePolicies(r.Context(), callerID, id, req.PolicyIDs); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *WorkplaceHandler) GetDeclaredPolicies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	policies, err := h.wpSvc.GetDeclaredPolicies(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, policies)
}

type employerRequestBody struct {
	Note string `json:"note"`
}

func (h *WorkplaceHandler) RequestEmployerAccess(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req employerRequestBody
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.wpSvc.RequestEmployerAccess(r.Context(), callerID, id, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type resolveEmployerRequestBody struct {
	Approve bool `json:"approve"`
}

func (h *WorkplaceHandler) ResolveEmployerRequest(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req resolveEmployerRequestBody
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.wpSvc.ResolveEmployerRequest(r.Context(), callerID, requestID, req.Approve); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *WorkplaceHandler) ListEmployerRequests(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	requests, err := h.wpSvc.ListEmployerRequests(r.Context(), callerID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

func (h *WorkplaceHandler) GetRatingSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := h.wpSvc.GetRatingSummary(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
