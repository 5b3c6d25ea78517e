// internal/handlers/farmer_handlers.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"kisan-ai/internal/engine/actors"
	"kisan-ai/internal/middleware"
	"kisan-ai/internal/models"
	"kisan-ai/internal/types"
	"kisan-ai/internal/utils"
)

// RegisterFarmerRequest represents a request to register a new farmer
type RegisterFarmerRequest struct {
	Name              string   `json:"name"`
	Mobile            string   `json:"mobile"`
	Password          string   `json:"password"`
	Village           string   `json:"village"`
	State             string   `json:"state"`
	Crops             []string `json:"crops"`
	PreferredLanguage string   `json:"preferredLanguage"`
}

// LoginRequest represents a request to log in a farmer
type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a request to update the farmer's profile
type UpdateProfileRequest struct {
	Village           string   `json:"village"`
	State             string   `json:"state"`
	PreferredLanguage string   `json:"preferredLanguage"`
	Crops             []string `json:"crops"`
}

// HandleFarmerRegistration handles requests to register a new farmer
func (s *Server) HandleFarmerRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterFarmerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetFarmerActor(),
			&actors.RegisterFarmerMsg{
				Name:              req.Name,
				Mobile:            req.Mobile,
				Password:          req.Password,
				Village:           req.Village,
				State:             req.State,
				Crops:             req.Crops,
				PreferredLanguage: req.PreferredLanguage,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to register farmer: %v", err), http.StatusInternalServerError)
			return
		}
		if respondAppError(w, result) {
			return
		}
		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleFarmerLogin handles requests to log in a farmer
func (s *Server) HandleFarmerLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetFarmerActor(),
			&actors.LoginMsg{
				Mobile:   req.Mobile,
				Password: req.Password,
			},
			s.RequestTimeout,
		)

		result, err := future.Result()
		if err != nil {
			log.Printf("HTTP Handler: Error getting login result: %v", err)
			http.Error(w, "Failed to process login", http.StatusInternalServerError)
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			if appErr.Code == utils.ErrInvalidCredentials {
				respondJSON(w, http.StatusUnauthorized, &types.LoginResponse{
					Success: false,
					Error:   "Invalid credentials",
				})
				return
			}
			http.Error(w, appErr.Error(), utils.AppErrorToHTTPStatus(appErr.Code))
			return
		}

		farmer, ok := result.(*models.Farmer)
		if !ok {
			log.Printf("HTTP Handler: Invalid response type: %T", result)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		token, err := middleware.GenerateToken(farmer.ID)
		if err != nil {
			log.Printf("HTTP Handler: Failed to generate token: %v", err)
			http.Error(w, "Failed to generate auth token", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, &types.LoginResponse{
			Success:  true,
			Token:    token,
			FarmerID: farmer.ID.String(),
		})
	}
}

// HandleFarmerProfile handles profile reads and updates for the authenticated farmer
func (s *Server) HandleFarmerProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID, ok := middleware.GetFarmerIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		switch r.Method {
		case http.MethodGet:
			future := s.Context.RequestFuture(
				s.Engine.GetFarmerActor(),
				&actors.GetProfileMsg{FarmerID: farmerID},
				s.RequestTimeout,
			)
			result, err := future.Result()
			if err != nil {
				http.Error(w, "Failed to fetch profile", http.StatusInternalServerError)
				return
			}
			if respondAppError(w, result) {
				return
			}
			respondJSON(w, http.StatusOK, result)

		case http.MethodPut:
			var req UpdateProfileRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}

			future := s.Context.RequestFuture(
				s.Engine.GetFarmerActor(),
				&actors.UpdateProfileMsg{
					FarmerID:          farmerID,
					Village:           req.Village,
					State:             req.State,
					PreferredLanguage: req.PreferredLanguage,
					Crops:             req.Crops,
				},
				s.RequestTimeout,
			)
			result, err := future.Result()
			if err != nil {
				http.Error(w, "Failed to update profile", http.StatusInternalServerError)
				return
			}
			if respondAppError(w, result) {
				return
			}
			respondJSON(w, http.StatusOK, result)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
