// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"kisan-ai/internal/assistant"
	"kisan-ai/internal/config"
	"kisan-ai/internal/database"
	"kisan-ai/internal/engine"
	"kisan-ai/internal/handlers"
	"kisan-ai/internal/middleware"
	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"
	"kisan-ai/internal/weather"
	"kisan-ai/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.SetSecret(cfg.JWTSecret)
	metrics := utils.NewMetricsCollector()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongodb, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongodb.Close(context.Background())

	if err := mongodb.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	if err := seedMarketPrices(ctx, mongodb); err != nil {
		log.Fatalf("Failed to seed market prices: %v", err)
	}

	system := actor.NewActorSystem()
	appEngine := engine.NewEngine(system, metrics, mongodb)

	weatherClient := weather.NewClient(cfg.Weather)

	aiAssistant, err := assistant.NewAssistant(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize assistant: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	server := handlers.NewServer(system, appEngine, metrics, mongodb, weatherClient, aiAssistant, hub, cfg)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	route := func(path string, handler http.HandlerFunc) {
		http.HandleFunc(path, middleware.ApplyCORS(server.WithMetrics(middleware.ApplyJWTMiddleware(handler, path)), corsConfig))
	}

	route("/health", server.HandleHealth())
	route("/metrics", server.HandleMetrics())

	route("/farmer/register", server.HandleFarmerRegistration())
	route("/farmer/login", server.HandleFarmerLogin())
	route("/farmer/profile", server.HandleFarmerProfile())

	route("/posts", server.HandlePost())
	route("/posts/feed", server.HandleFeed())
	route("/posts/like", server.HandleLikePost())
	route("/comments", server.HandleComment())

	route("/weather", server.HandleCurrentWeather())
	route("/weather/forecast", server.HandleForecast())
	route("/market/prices", server.HandleMarketPrices())

	route("/assistant/ask", server.HandleAsk())
	route("/assistant/voice", server.HandleVoiceAsk())
	route("/plant-doctor/diagnose", server.HandleDiagnose())

	// The socket authenticates via query token, not the Authorization header.
	http.HandleFunc("/ws", middleware.ApplyCORS(server.HandleWebSocket(), corsConfig))

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting KisanAI server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// seedMarketPrices loads the reference mandi dataset on first boot.
func seedMarketPrices(ctx context.Context, mongodb *database.MongoDB) error {
	count, err := mongodb.CountMarketPrices(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding market price data")
	return mongodb.SeedMarketPrices(ctx, defaultMarketPrices())
}

func defaultMarketPrices() []*models.MarketPrice {
	day := func(hour int) time.Time {
		return time.Date(2024, time.July, 30, hour, 0, 0, 0, time.UTC)
	}
	return []*models.MarketPrice{
		{ID: "wheat-nagpur", Crop: "Wheat", Price: 2050, Unit: "Quintal", Market: "Nagpur", Trend: models.TrendUp, Timestamp: day(6), Lat: 21.1458, Lon: 79.0882},
		{ID: "soybean-indore", Crop: "Soybean", Price: 4800, Unit: "Quintal", Market: "Indore", Trend: models.TrendStable, Timestamp: day(6), Lat: 22.7196, Lon: 75.8577},
		{ID: "cotton-aurangabad", Crop: "Cotton", Price: 7100, Unit: "Quintal", Market: "Aurangabad", Trend: models.TrendDown, Timestamp: day(7), Lat: 19.8762, Lon: 75.3433},
		{ID: "gram-jaipur", Crop: "Gram", Price: 6300, Unit: "Quintal", Market: "Jaipur", Trend: models.TrendUp, Timestamp: day(7), Lat: 26.9124, Lon: 75.7873},
		{ID: "paddy-raipur", Crop: "Paddy", Price: 2200, Unit: "Quintal", Market: "Raipur", Trend: models.TrendStable, Timestamp: day(8), Lat: 21.2514, Lon: 81.6296},
		{ID: "tomato-pune", Crop: "Tomato", Price: 2500, Unit: "Quintal", Market: "Pune", Trend: models.TrendUp, Timestamp: day(8), Lat: 18.5204, Lon: 73.8567},
		{ID: "onion-nashik", Crop: "Onion", Price: 1800, Unit: "Quintal", Market: "Nashik", Trend: models.TrendDown, Timestamp: day(9), Lat: 19.9975, Lon: 73.7898},
		{ID: "potato-agra", Crop: "Potato", Price: 1500, Unit: "Quintal", Market: "Agra", Trend: models.TrendStable, Timestamp: day(9), Lat: 27.1767, Lon: 78.0081},
	}
}
