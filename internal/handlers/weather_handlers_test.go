package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kisan-ai/internal/config"
	"kisan-ai/internal/models"
	"kisan-ai/internal/weather"

	"github.com/stretchr/testify/assert"
)

func newWeatherTestServer(t *testing.T, upstream *httptest.Server) *Server {
	t.Helper()
	weatherCfg := &config.WeatherConfig{
		APIKey:      "test-key",
		BaseURL:     upstream.URL,
		FallbackLat: 21.1458,
		FallbackLon: 79.0882,
	}
	return &Server{
		Weather: weather.NewClient(weatherCfg),
		Config:  &config.Config{Weather: weatherCfg},
	}
}

func currentPayload(name string, temp float64) string {
	return fmt.Sprintf(`{
		"main": {"temp": %g, "humidity": 60},
		"wind": {"speed": 3.0},
		"weather": [{"main": "Clear", "icon": "01d"}],
		"name": %q,
		"sys": {"country": "IN"},
		"coord": {"lat": 21.1458, "lon": 79.0882}
	}`, temp, name)
}

func TestCurrentWeatherUsesQueryCoordinates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "18.52", r.URL.Query().Get("lat"))
		fmt.Fprint(w, currentPayload("Pune", 24.4))
	}))
	defer upstream.Close()

	server := newWeatherTestServer(t, upstream)
	req := httptest.NewRequest(http.MethodGet, "/weather?lat=18.52&lon=73.85", nil)
	rec := httptest.NewRecorder()
	server.HandleCurrentWeather()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var data models.WeatherData
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 24, data.Temperature)
	assert.Equal(t, "Pune, IN", data.Location)
}

func TestCurrentWeatherFallsBackWhenLocationUnknown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "21.1458" {
			fmt.Fprint(w, currentPayload("Nagpur", 30.2))
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer upstream.Close()

	server := newWeatherTestServer(t, upstream)
	req := httptest.NewRequest(http.MethodGet, "/weather?lat=0.1&lon=0.1", nil)
	rec := httptest.NewRecorder()
	server.HandleCurrentWeather()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var data models.WeatherData
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "Nagpur, IN", data.Location)
	assert.Equal(t, 30, data.Temperature)
}

func TestCurrentWeatherMissingCoordinatesUsesDefaults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "21.1458", r.URL.Query().Get("lat"))
		assert.Equal(t, "79.0882", r.URL.Query().Get("lon"))
		fmt.Fprint(w, currentPayload("Nagpur", 28))
	}))
	defer upstream.Close()

	server := newWeatherTestServer(t, upstream)
	req := httptest.NewRequest(http.MethodGet, "/weather", nil)
	rec := httptest.NewRecorder()
	server.HandleCurrentWeather()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCurrentWeatherRejectsBadCoordinates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	}))
	defer upstream.Close()

	server := newWeatherTestServer(t, upstream)
	req := httptest.NewRequest(http.MethodGet, "/weather?lat=abc&lon=73.85", nil)
	rec := httptest.NewRecorder()
	server.HandleCurrentWeather()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecastReturnsSelectedDays(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Two samples on the same future day; the one nearer noon must win.
		fmt.Fprint(w, `{"list": [
			{"dt": 2000073600, "main": {"temp": 21.0}, "weather": [{"main": "Clouds", "icon": "03d"}]},
			{"dt": 2000084400, "main": {"temp": 25.6}, "weather": [{"main": "Clear", "icon": "01d"}]}
		]}`)
	}))
	defer upstream.Close()

	server := newWeatherTestServer(t, upstream)
	req := httptest.NewRequest(http.MethodGet, "/weather/forecast?lat=18.52&lon=73.85", nil)
	rec := httptest.NewRecorder()
	server.HandleForecast()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var days []models.ForecastDay
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	assert.Len(t, days, 1)
	assert.Equal(t, 26, days[0].Temp)
	assert.Equal(t, "Clear", days[0].Condition)
}
