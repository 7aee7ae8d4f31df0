package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formbricks/explorer/internal/api/response"
	"github.com/formbricks/explorer/internal/api/validation"
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/models"
)

// TranscriptsService defines the interface for transcript browsing.
type TranscriptsService interface {
	ListTranscripts(split *datatypes.Split) *models.ListTranscriptsResponse
	GetTranscript(id string) (*models.Transcript, error)
}

// TranscriptsHandler handles HTTP requests for transcripts.
type TranscriptsHandler struct {
	service TranscriptsService
}

// NewTranscriptsHandler creates a new transcripts handler.
func NewTranscriptsHandler(service TranscriptsService) *TranscriptsHandler {
	return &TranscriptsHandler{service: service}
}

// List handles GET /api/transcripts.
func (h *TranscriptsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filters models.ListTranscriptsFilters
	if err := validation.DecodeQueryParams(r, &filters); err != nil {
		response.RespondBadRequest(w, err.Error())

		return
	}

	filters.Split = blankToNil(filters.Split)

	if err := validation.ValidateStruct(&filters); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	var split *datatypes.Split

	if filters.Split != nil {
		s, err := datatypes.ParseSplit(*filters.Split)
		if err != nil {
			response.RespondBadRequest(w, err.Error())

			return
		}

		split = &s
	}

	response.RespondJSON(w, http.StatusOK, h.service.ListTranscripts(split))
}

// Get handles GET /api/transcript/{id}.
func (h *TranscriptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.RespondBadRequest(w, "Transcript ID is required")

		return
	}

	transcript, err := h.service.GetTranscript(id)
	if err != nil {
		response.RespondServiceError(w, r, err)

		return
	}

	response.RespondJSON(w, http.StatusOK, transcript)
}
