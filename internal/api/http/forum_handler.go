package http

import (
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

type ForumHandler struct {
	forumSvc service.ForumService
}

func NewForumHandler(forumSvc service.ForumService) *ForumHandler {
	return &ForumHandler{forumSvc: forumSvc}
}

func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)

	var post domain.ForumPost
	if !decodeBody(w, r, &post) {
		return
	}

	if err := h.forumSvc.CreatePost(r.Context(), callerID, &post); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

type forumPostResponse struct {
	Post     *domain.ForumPost     `json:"post"`
	Comments []domain.ForumComment `json:"comments"`
}

func (h *ForumHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	post, comments, err := h.forumSvc.GetPost(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, forumPostResponse{Post: post, Comments: comments})
}

func (h *ForumHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, total, err := h.forumSvc.ListPosts(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: items, Total: total})
}

func (h *ForumHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var post domain.ForumPost
	if !decodeBody(w, r, &post) {
		return
	}
	post.ID = id

	if err := h.forumSvc.UpdatePost(r.Context(), callerID, &post); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *ForumHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.forumSvc.DeletePost(r.Context(), callerID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type commentRequest struct {
	Body string `json:"body"`
}

func (h *ForumHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.forumSvc.AddComment(r.Context(), callerID, postID, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (h *ForumHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	callerID, _ := userID(r)
	commentID, err := pathID(r, "commentId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.forumSvc.DeleteComment(r.Context(), callerID, commentID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
