// internal/handlers/core_handlers.go
package handlers

import (
	"net/http"
	"time"

	"kisan-ai/internal/engine/actors"
)

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		futurePosts := s.Context.RequestFuture(s.Engine.GetFeedActor(), &actors.GetCountsMsg{}, s.RequestTimeout)
		postResult, err := futurePosts.Result()
		if err != nil {
			http.Error(w, "Failed to get post count", http.StatusInternalServerError)
			return
		}
		postCount := postResult.(int)

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":      "healthy",
			"post_count":  postCount,
			"server_time": time.Now(),
		})
	}
}

// HandleMetrics reports request counters and operation latencies
func (s *Server) HandleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requests, errors, uptime := s.Metrics.Snapshot()

		latencies := make(map[string]string)
		for name, avg := range s.Metrics.AverageLatencies() {
			latencies[name] = avg.String()
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"requests":   requests,
			"errors":     errors,
			"uptime":     uptime.String(),
			"operations": latencies,
		})
	}
}
