// internal/handlers/handlers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"kisan-ai/internal/assistant"
	"kisan-ai/internal/config"
	"kisan-ai/internal/database"
	"kisan-ai/internal/engine"
	"kisan-ai/internal/utils"
	"kisan-ai/internal/weather"
	"kisan-ai/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	MongoDB        *database.MongoDB
	Weather        *weather.Client
	Assistant      *assistant.Assistant
	Hub            *websocket.Hub
	Config         *config.Config
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	mongodb *database.MongoDB,
	weatherClient *weather.Client,
	aiAssistant *assistant.Assistant,
	hub *websocket.Hub,
	cfg *config.Config,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		MongoDB:        mongodb,
		Weather:        weatherClient,
		Assistant:      aiAssistant,
		Hub:            hub,
		Config:         cfg,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// WithMetrics counts the request against the metrics collector, and counts an
// error when the handler writes a 4xx or 5xx status.
func (s *Server) WithMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)

		if recorder.status >= http.StatusBadRequest {
			s.Metrics.IncrementErrors()
		}
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondAppError maps an application error to its HTTP status. Returns true
// when the result was an error and has been written.
func respondAppError(w http.ResponseWriter, result interface{}) bool {
	appErr, ok := result.(*utils.AppError)
	if !ok {
		return false
	}
	http.Error(w, appErr.Error(), utils.AppErrorToHTTPStatus(appErr.Code))
	return true
}
