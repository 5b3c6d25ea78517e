// internal/weather/client.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"kisan-ai/internal/config"
	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"
)

// Client talks to the OpenWeather API. All requests use metric units.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.WeatherConfig) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: http.DefaultClient,
	}
}

// currentResponse mirrors the fields consumed from the /weather endpoint.
type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

// forecastResponse mirrors the fields consumed from the /forecast endpoint
// (3-hour resolution, 5 days).
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
			Icon string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

func (c *Client) fetch(ctx context.Context, endpoint string, lat, lon float64, out interface{}) error {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%g", lat))
	params.Set("lon", fmt.Sprintf("%g", lon))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return utils.NewServiceUnavailableError("weather", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return utils.NewServiceUnavailableError("weather", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return utils.NewAppError(utils.ErrNoDataForLocation, "No weather data for location", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return utils.NewServiceUnavailableError("weather",
			fmt.Errorf("openweather returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return utils.NewServiceUnavailableError("weather", err)
	}
	return nil
}

// Current fetches current conditions for the given coordinates.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*models.WeatherData, error) {
	var data currentResponse
	if err := c.fetch(ctx, "weather", lat, lon, &data); err != nil {
		return nil, err
	}

	condition, icon := "", ""
	if len(data.Weather) > 0 {
		condition = data.Weather[0].Main
		icon = data.Weather[0].Icon
	}

	return &models.WeatherData{
		Temperature: int(math.Round(data.Main.Temp)),
		Humidity:    data.Main.Humidity,
		WindSpeed:   int(math.Round(data.Wind.Speed * 3.6)), // m/s to km/h
		Condition:   condition,
		Location:    fmt.Sprintf("%s, %s", data.Name, data.Sys.Country),
		Icon:        icon,
		Lat:         data.Coord.Lat,
		Lon:         data.Coord.Lon,
	}, nil
}

// Forecast fetches the raw forecast series for the given coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]models.ForecastSample, error) {
	var data forecastResponse
	if err := c.fetch(ctx, "forecast", lat, lon, &data); err != nil {
		return nil, err
	}

	samples := make([]models.ForecastSample, 0, len(data.List))
	for _, item := range data.List {
		condition, icon := "", ""
		if len(item.Weather) > 0 {
			condition = item.Weather[0].Main
			icon = item.Weather[0].Icon
		}
		samples = append(samples, models.ForecastSample{
			TimestampMs:  item.Dt * 1000,
			TemperatureC: item.Main.Temp,
			Condition:    condition,
			Icon:         icon,
		})
	}

	return samples, nil
}
