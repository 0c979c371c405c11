package http

import (
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

type JobHandler struct {
	jobSvc service.JobService
}

func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	var post domain.JobPost
	if !decodeBody(w, r, &post) {
		return
	}

	if err := h.jobSvc.CreateJobPost(r.Context(), callerID, &post); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	post, err := h.jobSvc.GetJobPost(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	query := r.URL.Query().Get("q")
	location := r.URL.Query().Get("location")

	items, total, err := h.jobSvc.SearchJobPosts(r.Context(), query, location, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

func (h *JobHandler) ListByWorkplace(w http.ResponseWriter, r *http.Request) {
	workplaceID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	page, pageSize := pagination(r)

	items, total, err := h.jobSvc.ListJobPostsByWorkplace(r.Context(), workplaceID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var post domain.JobPost
	if !decodeBody(w, r, &post) {
		return
	}
	post.ID = id

	if err := h.jobSvc.UpdateJobPost(r.Context(), callerID, &post); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *JobHandler) Close(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.jobSvc.CloseJobPost(r.Context(), callerID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.jobSvc.DeleteJobPost(r.Context(), callerID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type applyRequest struct {
	CoverNote string `json:"cover_note"`
}

func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req applyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	app, err := h.jobSvc.Apply(r.Context(), callerID, postID, req.CoverNote)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, app)
}

func (h *JobHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	appID, err := pathID(r, "applicationId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.jobSvc.WithdrawApplication(r.Context(), callerID, appID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *JobHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	page, pageSize := pagination(r)

	items, total, err := h.jobSvc.ListMyApplications(r.Context(), callerID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

func (h *JobHandler) ListApplicationsForPost(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	page, pageSize := pagination(r)

	items, total, err := h.jobSvc.ListApplicationsForPost(r.Context(), callerID, postID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

type applicationStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) SetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	appID, err := pathID(r, "applicationId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req applicationStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.jobSvc.SetApplicationStatus(r.Context(), callerID, appID, domain.JobApplicationStatus(req.Status)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
