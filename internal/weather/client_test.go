package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kisan-ai/internal/config"
	"kisan-ai/internal/utils"

	"github.com/stretchr/testify/assert"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.WeatherConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
	})
}

func TestCurrentParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"main": {"temp": 27.6, "humidity": 64},
			"wind": {"speed": 4.2},
			"weather": [{"main": "Clouds", "icon": "03d"}],
			"name": "Nagpur",
			"sys": {"country": "IN"},
			"coord": {"lat": 21.1458, "lon": 79.0882}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	data, err := client.Current(context.Background(), 21.1458, 79.0882)

	assert.NoError(t, err)
	assert.Equal(t, 28, data.Temperature)
	assert.Equal(t, 64, data.Humidity)
	assert.Equal(t, 15, data.WindSpeed) // 4.2 m/s * 3.6 = 15.12 km/h
	assert.Equal(t, "Clouds", data.Condition)
	assert.Equal(t, "Nagpur, IN", data.Location)
	assert.Equal(t, "03d", data.Icon)
}

func TestCurrentServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Current(context.Background(), 21.1458, 79.0882)

	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrServiceUnavailable))
}

func TestCurrentNoDataForLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Current(context.Background(), 0, 0)

	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNoDataForLocation))
}

func TestForecastParsesSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"list": [
				{"dt": 1722420000, "main": {"temp": 24.3}, "weather": [{"main": "Rain", "icon": "10d"}]},
				{"dt": 1722430800, "main": {"temp": 26.8}, "weather": [{"main": "Clouds", "icon": "04d"}]}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	samples, err := client.Forecast(context.Background(), 21.1458, 79.0882)

	assert.NoError(t, err)
	assert.Len(t, samples, 2)
	assert.Equal(t, int64(1722420000000), samples[0].TimestampMs)
	assert.Equal(t, 24.3, samples[0].TemperatureC)
	assert.Equal(t, "Rain", samples[0].Condition)
	assert.Equal(t, "10d", samples[0].Icon)
}

func TestForecastUnreachableServer(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.Forecast(context.Background(), 21.1458, 79.0882)

	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrServiceUnavailable))
}
