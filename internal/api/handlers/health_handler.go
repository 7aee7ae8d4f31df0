package handlers

import (
	"net/http"

	"github.com/formbricks/explorer/internal/api/response"
)

// CorpusStats is the part of the corpus the health check reports.
type CorpusStats interface {
	Len() int
	EmbeddedCount() int
	Dimension() int
	Model() string
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Transcripts int    `json:"transcripts"`
	Embedded    int    `json:"embedded"`
	Dimension   int    `json:"dimension"`
	Model       string `json:"model,omitempty"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	corpus CorpusStats
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(corpus CorpusStats) *HealthHandler {
	return &HealthHandler{corpus: corpus}
}

// Check handles GET /health. The corpus is loaded before the server starts, so a running
// process is always healthy.
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Transcripts: h.corpus.Len(),
		Embedded:    h.corpus.EmbeddedCount(),
		Dimension:   h.corpus.Dimension(),
		Model:       h.corpus.Model(),
	})
}
