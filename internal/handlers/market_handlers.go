// internal/handlers/market_handlers.go
package handlers

import (
	"net/http"

	"kisan-ai/internal/utils"
)

// HandleMarketPrices returns current mandi prices, optionally filtered by crop
func (s *Server) HandleMarketPrices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		crop := r.URL.Query().Get("crop")

		prices, err := s.MongoDB.ListMarketPrices(r.Context(), crop)
		if err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				http.Error(w, appErr.Error(), utils.AppErrorToHTTPStatus(appErr.Code))
				return
			}
			http.Error(w, "Failed to fetch market prices", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, prices)
	}
}
