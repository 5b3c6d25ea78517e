// internal/handlers/assistant_handlers.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kisan-ai/internal/assistant"
	"kisan-ai/internal/utils"
)

// Model calls take much longer than actor round trips, more so when audio
// is generated.
const assistantTimeout = 60 * time.Second

func respondAssistantError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		http.Error(w, appErr.Error(), utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}
	http.Error(w, "Assistant request failed", http.StatusInternalServerError)
}

// HandleAsk answers a farming question with text advice
func (s *Server) HandleAsk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var input assistant.AdviceInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if input.Question == "" {
			http.Error(w, "Question is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
		defer cancel()

		output, err := s.Assistant.Advise(ctx, input)
		if err != nil {
			respondAssistantError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, output)
	}
}

// HandleVoiceAsk answers a farming question and voices the answer
func (s *Server) HandleVoiceAsk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var input assistant.AdviceInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if input.Question == "" {
			http.Error(w, "Question is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
		defer cancel()

		output, err := s.Assistant.SpeakAdvice(ctx, input)
		if err != nil {
			respondAssistantError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, output)
	}
}

// HandleDiagnose runs the plant doctor over an uploaded photo
func (s *Server) HandleDiagnose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var input assistant.DiagnosisInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if input.PhotoDataURI == "" {
			http.Error(w, "Photo is required", http.StatusBadRequest)
			return
		}
		if input.Language == "" {
			input.Language = "en"
		}

		ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
		defer cancel()

		output, err := s.Assistant.Diagnose(ctx, input)
		if err != nil {
			respondAssistantError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, output)
	}
}
