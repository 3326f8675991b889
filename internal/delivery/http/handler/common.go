package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"go-clinic-backend/internal/domain/repository"
)

// parseID reads the {id} path variable as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// parsePagination reads page/limit query parameters. Defaults and caps are
// applied downstream by Pagination.Normalize.
func parsePagination(r *http.Request) repository.Pagination {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return repository.Pagination{Page: page, Limit: limit}
}
