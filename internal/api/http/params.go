package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"worklens-backend/internal/domain"
)

func pathID(r *http.Request, name string) (int32, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing path parameter %q", domain.ErrValidation, name)
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %q", domain.ErrValidation, name)
	}
	return int32(id), nil
}

// pagination reads page/page_size query params with sane bounds.
func pagination(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
