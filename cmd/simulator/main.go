// cmd/simulator/main.go
package main

import (
	"context"
	"log"
	"os"
	"time"

	"kisan-ai/simulator"
)

func main() {
	config := simulator.SimConfig{
		NumFarmers:       20,
		SimulationTime:   5 * time.Minute,
		PostFrequency:    30.0,
		CommentFrequency: 60.0,
		LikeFrequency:    120.0,
		ServerURL:        "http://localhost:8080",
	}
	if url := os.Getenv("SERVER_URL"); url != "" {
		config.ServerURL = url
	}

	sim := simulator.NewSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Server URL: %s", config.ServerURL)
	log.Printf("- Number of farmers: %d", config.NumFarmers)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Post frequency: %.2f posts/min", config.PostFrequency)
	log.Printf("- Comment frequency: %.2f comments/min", config.CommentFrequency)
	log.Printf("- Like frequency: %.2f likes/min", config.LikeFrequency)

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	log.Printf("\nSimulation completed. Final metrics:")
	log.Printf("- Total farmers: %d", metrics.TotalFarmers)
	log.Printf("- Total posts: %d", metrics.TotalPosts)
	log.Printf("- Total comments: %d", metrics.TotalComments)
	log.Printf("- Total likes: %d", metrics.TotalLikes)
	log.Printf("- Average latency: %v", metrics.AverageLatency)
	log.Printf("- Error count: %d", metrics.ErrorCount)
	log.Printf("- Requests/sec: %.2f", metrics.RequestsPerSecond)
}
