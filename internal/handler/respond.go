package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// errorDetail is the inner payload of every error response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the uniform error envelope: {"error":{"code","message"}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// but not surfaced — the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service error onto the HTTP error envelope using the
// domain sentinel taxonomy. Unclassified errors become an opaque 500 so
// storage details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{errorDetail{"not_found", sentinelMessage(err)}})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{errorDetail{"conflict", sentinelMessage(err)}})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusBadRequest, errorResponse{errorDetail{"invalid_transition", sentinelMessage(err)}})
	case errors.Is(err, domain.ErrPreconditionFailed):
		writeJSON(w, http.StatusBadRequest, errorResponse{errorDetail{"precondition_failed", sentinelMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{"validation_error", sentinelMessage(err)}})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{errorDetail{"unauthorized", sentinelMessage(err)}})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{"internal", "internal server error"}})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (malformed body, bad path parameter).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{"validation_error", message}})
}

// sentinelMessage extracts the human-readable part from a wrapped sentinel
// error. e.g. "service.TripService.Dispatch: invalid transition: cannot
// dispatch a trip with status COMPLETED" → "cannot dispatch a trip with
// status COMPLETED". When no sentinel text is present the whole message is
// returned.
func sentinelMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		domain.ErrNotFound, domain.ErrConflict, domain.ErrInvalidTransition,
		domain.ErrPreconditionFailed, domain.ErrValidation, domain.ErrUnauthorized,
	} {
		marker := sentinel.Error() + ": "
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
		// A bare sentinel (e.g. repo "not found" with no detail) keeps its text.
		if strings.HasSuffix(msg, sentinel.Error()) {
			return sentinel.Error()
		}
	}
	return msg
}

// paginationMeta is the paging block of a paged list response.
type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// pagedResponse is the envelope for paged list endpoints:
// {"data":[...],"pagination":{"page","limit","total"}}.
type pagedResponse struct {
	Data       any            `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}

// writePage writes a paged list response.
func writePage(w http.ResponseWriter, data any, p domain.PaginationParams, total int64) {
	writeJSON(w, http.StatusOK, pagedResponse{
		Data:       data,
		Pagination: paginationMeta{Page: p.Page, Limit: p.Limit, Total: total},
	})
}

// queryInt parses the named query parameter as an int. Absent or
// non-numeric values return nil; range checks are NewPaginationParams' job.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// decodeBody decodes the request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
