package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/http/dto"
	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWalletNotTracked):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrWalletAlreadyTracked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrPollerAlreadyRunning),
		errors.Is(err, domain.ErrPollerNotRunning):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}

	return i
}

// parsePageRequest builds a page request from query parameters:
// page, page_size, direction, nonzero, search.
func parsePageRequest(r *http.Request) domain.PageRequest {
	q := r.URL.Query()

	return domain.NormalizePageRequest(domain.PageRequest{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", domain.DefaultPageSize),
		Criteria: domain.FilterCriteria{
			Direction:        domain.ParseDirection(q.Get("direction")),
			NonZeroValueOnly: q.Get("nonzero") == "true" || q.Get("nonzero") == "1",
			Search:           q.Get("search"),
		},
	})
}
