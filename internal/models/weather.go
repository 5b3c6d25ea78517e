package models

// WeatherData holds current conditions for a location.
type WeatherData struct {
	Temperature int     `json:"temperature"` // whole degrees Celsius
	Humidity    int     `json:"humidity"`    // percent
	WindSpeed   int     `json:"windSpeed"`   // km/h
	Condition   string  `json:"condition"`
	Location    string  `json:"location"` // "Name, Country"
	Icon        string  `json:"icon"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ForecastSample is one point of the upstream 3-hourly forecast series.
type ForecastSample struct {
	TimestampMs  int64   `json:"timestampMs"`
	TemperatureC float64 `json:"temperatureC"`
	Condition    string  `json:"condition"`
	Icon         string  `json:"icon"`
}

// ForecastDay is one derived daily summary: the closest-to-noon sample of a
// calendar date, never the current date.
type ForecastDay struct {
	Date      int64  `json:"date"` // unix ms of the selected sample
	Temp      int    `json:"temp"` // whole degrees Celsius
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}
