package http

import (
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type reviewRequest struct {
	Title string           `json:"title"`
	Body  string           `json:"body"`
	// Scores maps declared policy labels to 1-5 ratings.
	Scores map[string]int32 `json:"scores"`
}

type reviewResponse struct {
	Review  *domain.Review              `json:"review"`
	Ratings []domain.ReviewPolicyRating `json:"ratings,omitempty"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	workplaceID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review := &domain.Review{
		WorkplaceID: workplaceID,
		Title:       req.Title,
		Body:        req.Body,
	}
	created, err := h.reviewSvc.CreateReview(r.Context(), callerID, review, req.Scores)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reviewResponse{Review: created})
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reviewId")
	if err != nil {
		respondError(w, err)
		return
	}

	review, ratings, err := h.reviewSvc.GetReview(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviewResponse{Review: review, Ratings: ratings})
}

func (h *ReviewHandler) ListByWorkplace(w http.ResponseWriter, r *http.Request) {
	workplaceID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	page, pageSize := pagination(r)

	items, total, err := h.reviewSvc.ListReviews(r.Context(), workplaceID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "reviewId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review := &domain.Review{
		ID:    id,
		Title: req.Title,
		Body:  req.Body,
	}
	updated, err := h.reviewSvc.UpdateReview(r.Context(), callerID, review, req.Scores)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviewResponse{Review: updated})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "reviewId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.reviewSvc.DeleteReview(r.Context(), callerID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type replyRequest struct {
	Body string `json:"body"`
}

func (h *ReviewHandler) Reply(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req replyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reply, err := h.reviewSvc.ReplyToReview(r.Context(), callerID, reviewID, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reply)
}

func (h *ReviewHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	replyID, err := pathID(r, "replyId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.reviewSvc.DeleteReply(r.Context(), callerID, replyID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type helpfulRequest struct {
	Helpful bool `json:"helpful"`
}

func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	reviewID, err := pathID(r, "reviewId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req helpfulRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.reviewSvc.MarkHelpful(r.Context(), callerID, reviewID, req.Helpful); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
