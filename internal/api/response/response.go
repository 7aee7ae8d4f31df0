// Package response writes JSON and RFC 7807 problem responses.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/formbricks/explorer/internal/explorererrors"
)

// Problem kinds carried in the "kind" member so clients can branch without parsing titles.
const (
	KindValidationError      = "validation_error"
	KindNotFound             = "not_found"
	KindEmbeddingUnavailable = "embedding_unavailable"
	KindPayloadTooLarge      = "payload_too_large"
	KindInternalError        = "internal_error"
)

// ErrorDetail represents a single error detail in RFC 7807 Problem Details
type ErrorDetail struct {
	Location string `json:"location,omitempty"`
	Message  string `json:"message,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// ProblemDetails represents an RFC 7807 Problem Details error response
type ProblemDetails struct {
	Type     string        `json:"type,omitempty"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Kind     string        `json:"kind"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// RespondProblem writes problem as application/problem+json.
func RespondProblem(w http.ResponseWriter, problem ProblemDetails) {
	if problem.Type == "" {
		problem.Type = "about:blank"
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)

	if err := json.NewEncoder(w).Encode(problem); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// RespondError writes an RFC 7807 Problem Details error response
func RespondError(w http.ResponseWriter, statusCode int, kind, title, detail string) {
	RespondProblem(w, ProblemDetails{
		Title:  title,
		Status: statusCode,
		Kind:   kind,
		Detail: detail,
	})
}

// RespondBadRequest writes a 400 Bad Request error response
func RespondBadRequest(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusBadRequest, KindValidationError, "Bad Request", detail)
}

// RespondPayloadTooLarge writes a 413 Request Entity Too Large error response
func RespondPayloadTooLarge(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusRequestEntityTooLarge, KindPayloadTooLarge, "Request Entity Too Large", detail)
}

// RespondNotFound writes a 404 Not Found error response
func RespondNotFound(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusNotFound, KindNotFound, "Not Found", detail)
}

// RespondBadGateway writes a 502 Bad Gateway error response
func RespondBadGateway(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusBadGateway, KindEmbeddingUnavailable, "Bad Gateway", detail)
}

// RespondInternalServerError writes a 500 Internal Server Error response
func RespondInternalServerError(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusInternalServerError, KindInternalError, "Internal Server Error", detail)
}

// RespondServiceError maps a service error to its problem response.
// Unrecognized errors are logged and reported as 500 with a generic detail.
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *explorererrors.ValidationError
		notFoundErr   *explorererrors.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondBadRequest(w, validationErr.Error())
	case errors.As(err, &notFoundErr):
		RespondNotFound(w, notFoundErr.Error())
	case errors.Is(err, explorererrors.ErrEmbeddingUnavailable):
		RespondBadGateway(w, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		RespondInternalServerError(w, "An unexpected error occurred")
	}
}

// RespondJSON writes a JSON response directly without wrapping
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}
