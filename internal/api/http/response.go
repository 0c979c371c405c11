package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/security"
	"worklens-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type pageResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// respondError maps domain errors onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyResolved),
		errors.Is(err, domain.ErrAlreadyBanned),
		errors.Is(err, domain.ErrNotBanned):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnsupportedEntityKind):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrAccountBanned):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		respondJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
