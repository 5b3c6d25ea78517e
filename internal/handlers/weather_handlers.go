// internal/handlers/weather_handlers.go
package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"kisan-ai/internal/utils"
	"kisan-ai/internal/weather"
)

// coordinates reads lat/lon query parameters, falling back to the configured
// default location when the client supplies none.
func (s *Server) coordinates(r *http.Request) (lat, lon float64, ok bool) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" && lonStr == "" {
		return s.Config.Weather.FallbackLat, s.Config.Weather.FallbackLon, true
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// HandleCurrentWeather returns current conditions for the given coordinates
func (s *Server) HandleCurrentWeather() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		lat, lon, ok := s.coordinates(r)
		if !ok {
			http.Error(w, "Invalid coordinates", http.StatusBadRequest)
			return
		}

		data, err := s.Weather.Current(r.Context(), lat, lon)
		if err != nil && utils.IsErrorCode(err, utils.ErrNoDataForLocation) {
			// Retry on the fallback location so the client always gets a reading.
			log.Printf("No weather data for %.4f,%.4f, using fallback location", lat, lon)
			data, err = s.Weather.Current(r.Context(), s.Config.Weather.FallbackLat, s.Config.Weather.FallbackLon)
		}
		if err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				http.Error(w, appErr.Error(), utils.AppErrorToHTTPStatus(appErr.Code))
				return
			}
			http.Error(w, "Failed to fetch weather", http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, data)
	}
}

// HandleForecast returns the upcoming daily forecast for the given coordinates
func (s *Server) HandleForecast() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		lat, lon, ok := s.coordinates(r)
		if !ok {
			http.Error(w, "Invalid coordinates", http.StatusBadRequest)
			return
		}

		samples, err := s.Weather.Forecast(r.Context(), lat, lon)
		if err != nil && utils.IsErrorCode(err, utils.ErrNoDataForLocation) {
			log.Printf("No forecast data for %.4f,%.4f, using fallback location", lat, lon)
			samples, err = s.Weather.Forecast(r.Context(), s.Config.Weather.FallbackLat, s.Config.Weather.FallbackLon)
		}
		if err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				http.Error(w, appErr.Error(), utils.AppErrorToHTTPStatus(appErr.Code))
				return
			}
			http.Error(w, "Failed to fetch forecast", http.StatusInternalServerError)
			return
		}

		days := weather.SelectForecastDays(samples, time.Now())
		respondJSON(w, http.StatusOK, days)
	}
}
