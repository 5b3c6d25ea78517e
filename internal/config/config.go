// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// DatabaseConfig holds MongoDB connection settings
type DatabaseConfig struct {
	URI  string
	Name string
}

// WeatherConfig holds OpenWeather API settings
type WeatherConfig struct {
	APIKey  string
	BaseURL string
	// Default coordinates used when a client supplies none or the lookup
	// for its own coordinates fails (Nagpur).
	FallbackLat float64
	FallbackLon float64
}

// AIConfig holds generative AI settings
type AIConfig struct {
	APIKey   string
	Model    string
	TTSModel string
	TTSVoice string
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	Weather        *WeatherConfig
	AI             *AIConfig
	JWTSecret      string
	AllowedOrigins []string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
	}
}

// DefaultWeatherConfig provides default OpenWeather settings
func DefaultWeatherConfig() *WeatherConfig {
	return &WeatherConfig{
		BaseURL:     "https://api.openweathermap.org/data/2.5",
		FallbackLat: 21.1458,
		FallbackLon: 79.0882,
	}
}

// DefaultAIConfig provides default generative AI settings
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		Model:    "gemini-2.0-flash",
		TTSModel: "gemini-2.5-flash-preview-tts",
		TTSVoice: "Algenib",
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Silent failure if no .env exists, which is fine
	_ = godotenv.Load()

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	dbConfig := &DatabaseConfig{
		URI:  getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		Name: getEnvOrDefault("MONGODB_DATABASE", "kisan_ai"),
	}

	weatherConfig := DefaultWeatherConfig()
	weatherConfig.APIKey = os.Getenv("OPENWEATHER_KEY")
	if weatherConfig.APIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_KEY environment variable is required")
	}
	if latStr := os.Getenv("WEATHER_FALLBACK_LAT"); latStr != "" {
		if lat, err := strconv.ParseFloat(latStr, 64); err == nil {
			weatherConfig.FallbackLat = lat
		}
	}
	if lonStr := os.Getenv("WEATHER_FALLBACK_LON"); lonStr != "" {
		if lon, err := strconv.ParseFloat(lonStr, 64); err == nil {
			weatherConfig.FallbackLon = lon
		}
	}

	aiConfig := DefaultAIConfig()
	aiConfig.APIKey = os.Getenv("GEMINI_API_KEY")
	if aiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		aiConfig.Model = model
	}
	if ttsModel := os.Getenv("GEMINI_TTS_MODEL"); ttsModel != "" {
		aiConfig.TTSModel = ttsModel
	}
	if voice := os.Getenv("GEMINI_TTS_VOICE"); voice != "" {
		aiConfig.TTSVoice = voice
	}

	config := &Config{
		Server:         serverConfig,
		Database:       dbConfig,
		Weather:        weatherConfig,
		AI:             aiConfig,
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "kisanai_secret_key_should_be_loaded_from_env"),
		AllowedOrigins: []string{"*"}, // Default to allow all origins
		Debug:          false,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
