package handlers

import (
	"net/http"

	"github.com/formbricks/explorer/internal/api/response"
	"github.com/formbricks/explorer/internal/models"
)

// SummaryService defines the interface for aggregate statistics.
type SummaryService interface {
	Summary() *models.SummaryResponse
}

// SummaryHandler handles GET /api/summary.
type SummaryHandler struct {
	service SummaryService
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(service SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Get handles GET /api/summary.
func (h *SummaryHandler) Get(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.service.Summary())
}
