package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kisan-ai/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestWithMetricsCountsServedRequests(t *testing.T) {
	server := &Server{Metrics: utils.NewMetricsCollector()}

	okHandler := server.WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		okHandler(httptest.NewRecorder(), req)
	}

	requests, errors, _ := server.Metrics.Snapshot()
	assert.Equal(t, uint64(6), requests)
	assert.Equal(t, uint64(0), errors)
}

func TestWithMetricsCountsErrorResponses(t *testing.T) {
	server := &Server{Metrics: utils.NewMetricsCollector()}

	badHandler := server.WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})
	okHandler := server.WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	okHandler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	badHandler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))
	badHandler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	requests, errors, _ := server.Metrics.Snapshot()
	assert.Equal(t, uint64(3), requests)
	assert.Equal(t, uint64(2), errors)
}

func TestMetricsEndpointReportsCountersAndLatencies(t *testing.T) {
	server := &Server{Metrics: utils.NewMetricsCollector()}

	okHandler := server.WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	for i := 0; i < 4; i++ {
		okHandler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}
	server.Metrics.AddOperationLatency("create_post", 20*time.Millisecond)
	server.Metrics.AddOperationLatency("create_post", 40*time.Millisecond)

	rec := httptest.NewRecorder()
	server.HandleMetrics()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Requests   uint64            `json:"requests"`
		Errors     uint64            `json:"errors"`
		Operations map[string]string `json:"operations"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Greater(t, body.Requests, uint64(0))
	assert.Equal(t, uint64(4), body.Requests)
	assert.Equal(t, uint64(0), body.Errors)
	assert.Equal(t, "30ms", body.Operations["create_post"])
}
