package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbricks/explorer/internal/api/handlers"
	"github.com/formbricks/explorer/internal/api/response"
	"github.com/formbricks/explorer/internal/corpus/corpustest"
	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/internal/service"
)

type fixedEmbeddingClient struct {
	vec   []float32
	calls int
}

func (c *fixedEmbeddingClient) CreateEmbedding(context.Context, string) ([]float32, error) {
	c.calls++

	return c.vec, nil
}

func newTestRouter(t *testing.T, client service.EmbeddingClient, staticDir string) http.Handler {
	t.Helper()

	store := corpustest.SampleStore(t)

	return NewRouter(RouterParams{
		Health:      handlers.NewHealthHandler(store),
		Transcripts: handlers.NewTranscriptsHandler(service.NewTranscriptsService(store)),
		Search: handlers.NewSearchHandler(
			service.NewSearchService(service.SearchServiceParams{Corpus: store, EmbeddingClient: client}),
			handlers.PageLimits{},
		),
		Summary:      handlers.NewSummaryHandler(service.NewSummaryService(store)),
		MaxBodyBytes: 1024,
		StaticDir:    staticDir,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestRouter_SearchFlow(t *testing.T) {
	client := &fixedEmbeddingClient{vec: []float32{1, 0, 0}}
	h := newTestRouter(t, client, "")

	rec := do(t, h, http.MethodPost, "/api/search", `{"query":"automation at work","limit":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Limit)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "w1", resp.Results[0].TranscriptID)
	assert.Equal(t, "s1", resp.Results[1].TranscriptID)
	assert.Equal(t, "I am participant w1.", resp.Results[0].Snippet)

	rec = do(t, h, http.MethodPost, "/api/search", `{"query":"automation","split":"creatives","sentiment":"NEGATIVE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "c1", resp.Results[0].TranscriptID)
	assert.Equal(t, 1, resp.Total)
}

func TestRouter_EmptyQueryNeverCallsProvider(t *testing.T) {
	client := &fixedEmbeddingClient{vec: []float32{1, 0, 0}}
	h := newTestRouter(t, client, "")

	rec := do(t, h, http.MethodPost, "/api/search", `{"query":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"validation_error"`)
	assert.Zero(t, client.calls)
}

func TestRouter_WrongDimensionIs502(t *testing.T) {
	h := newTestRouter(t, &fixedEmbeddingClient{vec: []float32{1, 0}}, "")

	rec := do(t, h, http.MethodPost, "/api/search", `{"query":"q"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"embedding_unavailable"`)
}

func TestRouter_Transcripts(t *testing.T) {
	h := newTestRouter(t, &fixedEmbeddingClient{}, "")

	rec := do(t, h, http.MethodGet, "/api/transcripts?split=scientists", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list models.ListTranscriptsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "s1", list.Transcripts[0].TranscriptID)

	rec = do(t, h, http.MethodGet, "/api/transcript/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/transcript/zzz", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Transcript not found")

	rec = do(t, h, http.MethodGet, "/api/transcript/w1/similar?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var similar models.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&similar))
	assert.Equal(t, 2, similar.Total)
	require.Len(t, similar.Results, 1)
	assert.Equal(t, "s1", similar.Results[0].TranscriptID)
}

func TestRouter_SummaryAndHealth(t *testing.T) {
	h := newTestRouter(t, &fixedEmbeddingClient{}, "")

	rec := do(t, h, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.SummaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, 3, summary.TotalTranscripts)
	assert.Equal(t, 3, summary.TotalEmbedded)
	assert.Len(t, summary.BySplit, 3)

	rec = do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health handlers.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, 3, health.Transcripts)
	assert.Equal(t, 3, health.Dimension)
	assert.Equal(t, "test-model", health.Model)
}

func TestRouter_ProblemResponsesForRouting(t *testing.T) {
	h := newTestRouter(t, &fixedEmbeddingClient{}, "")

	rec := do(t, h, http.MethodGet, "/api/nothing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, "/api/search", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/search", `{"query":"`+strings.Repeat("x", 2048)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), response.KindPayloadTooLarge)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "metrics route is only mounted with a handler")
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>explorer</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	h := newTestRouter(t, &fixedEmbeddingClient{}, dir)

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>explorer</h1>")

	rec = do(t, h, http.MethodGet, "/static/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())
}
