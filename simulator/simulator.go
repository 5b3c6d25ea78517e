// simulator/simulator.go
package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SimConfig struct {
	NumFarmers       int
	SimulationTime   time.Duration
	PostFrequency    float64 // posts per minute across all farmers
	CommentFrequency float64
	LikeFrequency    float64
	ServerURL        string
}

type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	AverageLatency   time.Duration
	TotalPosts       int
	TotalComments    int
	TotalLikes       int
	RequestLatencies []time.Duration
}

// SimulatedFarmer tracks a registered account and the content it produced.
type SimulatedFarmer struct {
	ID         uuid.UUID
	Name       string
	Mobile     string
	Token      string
	Posts      []uuid.UUID
	LikedPosts map[uuid.UUID]bool
}

type Simulator struct {
	config  SimConfig
	stats   *SimulationStats
	farmers []*SimulatedFarmer
	client  *http.Client
	mu      sync.RWMutex
}

func NewSimulator(config SimConfig) *Simulator {
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime:        time.Now(),
			RequestLatencies: make([]time.Duration, 0),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting simulation with %d farmers...", s.config.NumFarmers)

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.SimulateActivities(ctx); err != nil {
			log.Printf("Activities simulation error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) initialize(ctx context.Context) error {
	log.Printf("Phase 1: Registering %d farmers...", s.config.NumFarmers)
	if err := s.registerFarmers(ctx); err != nil {
		return fmt.Errorf("failed to register farmers: %v", err)
	}

	log.Printf("Phase 2: Seeding initial posts...")
	if err := s.seedInitialPosts(ctx); err != nil {
		return fmt.Errorf("failed to seed posts: %v", err)
	}

	log.Printf("Initialization completed with %d farmers", len(s.farmers))
	return nil
}

func (s *Simulator) registerFarmers(ctx context.Context) error {
	s.farmers = make([]*SimulatedFarmer, 0, s.config.NumFarmers)

	numWorkers := 5
	jobs := make(chan int, numWorkers)
	results := make(chan *SimulatedFarmer, numWorkers)

	var wg sync.WaitGroup

	// Shared rate limiter keeps registration from hammering the server.
	rateLimiter := time.NewTicker(100 * time.Millisecond)
	defer rateLimiter.Stop()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for farmerNum := range jobs {
				<-rateLimiter.C

				farmer := &SimulatedFarmer{
					Name:       fmt.Sprintf("farmer_%d", farmerNum),
					Mobile:     fmt.Sprintf("9%09d", 100000000+farmerNum),
					LikedPosts: make(map[uuid.UUID]bool),
					Posts:      make([]uuid.UUID, 0),
				}

				var err error
				for retries := 0; retries < 3; retries++ {
					if err = s.registerAndLogin(ctx, farmer); err == nil {
						results <- farmer
						break
					}
					backoff := time.Duration(math.Pow(2, float64(retries))) * time.Second
					log.Printf("Worker %d: retry %d for farmer %s after %v",
						workerID, retries+1, farmer.Name, backoff)
					time.Sleep(backoff)
				}
				if err != nil {
					log.Printf("Worker %d: giving up on farmer %s: %v", workerID, farmer.Name, err)
				}
			}
		}(i)
	}

	go func() {
		for i := 0; i < s.config.NumFarmers; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for farmer := range results {
		s.mu.Lock()
		s.farmers = append(s.farmers, farmer)
		s.mu.Unlock()
	}

	log.Printf("Successfully registered %d farmers", len(s.farmers))
	return nil
}

func (s *Simulator) registerAndLogin(ctx context.Context, farmer *SimulatedFarmer) error {
	regData := map[string]interface{}{
		"name":              farmer.Name,
		"mobile":            farmer.Mobile,
		"password":          "testpass123",
		"village":           "Simville",
		"state":             "Maharashtra",
		"crops":             []string{"wheat", "cotton"},
		"preferredLanguage": "en",
	}

	regResp, err := s.makeRequest("POST", "/farmer/register", "", regData)
	if err != nil {
		return fmt.Errorf("registration failed: %v", err)
	}

	var registered struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(regResp, &registered); err != nil {
		return fmt.Errorf("failed to parse registration response: %v", err)
	}
	farmerID, err := uuid.Parse(registered.ID)
	if err != nil {
		return fmt.Errorf("invalid farmer ID in response: %v", err)
	}
	farmer.ID = farmerID

	loginResp, err := s.makeRequest("POST", "/farmer/login", "", map[string]interface{}{
		"mobile":   farmer.Mobile,
		"password": "testpass123",
	})
	if err != nil {
		return fmt.Errorf("login failed: %v", err)
	}

	var login struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(loginResp, &login); err != nil {
		return fmt.Errorf("failed to parse login response: %v", err)
	}
	if !login.Success || login.Token == "" {
		return fmt.Errorf("login rejected for %s", farmer.Mobile)
	}
	farmer.Token = login.Token
	return nil
}

// makeRequest issues an HTTP request, attaching the bearer token when present,
// and records latency metrics.
func (s *Simulator) makeRequest(method, endpoint, token string, data interface{}) ([]byte, error) {
	var body []byte
	var err error

	if data != nil {
		body, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, s.config.ServerURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.recordRequestMetrics(start, err)

	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (s *Simulator) recordRequestMetrics(start time.Time, err error) {
	latency := time.Since(start)

	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	s.stats.TotalRequests++
	if err != nil {
		s.stats.FailedRequests++
	} else {
		s.stats.SuccessRequests++
	}

	s.stats.RequestLatencies = append(s.stats.RequestLatencies, latency)
	var total time.Duration
	for _, l := range s.stats.RequestLatencies {
		total += l
	}
	s.stats.AverageLatency = total / time.Duration(len(s.stats.RequestLatencies))
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.stats.mu.RLock()
			elapsed := time.Since(s.stats.StartTime)
			requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()
			successRate := 0.0
			if s.stats.TotalRequests > 0 {
				successRate = float64(s.stats.SuccessRequests) / float64(s.stats.TotalRequests) * 100
			}

			log.Printf("\nSimulation Metrics (%.1f seconds elapsed):", elapsed.Seconds())
			log.Printf("- Request Rate: %.2f req/sec", requestRate)
			log.Printf("- Success Rate: %.1f%%", successRate)
			log.Printf("- Average Latency: %v", s.stats.AverageLatency)
			log.Printf("- Total Posts: %d", s.stats.TotalPosts)
			log.Printf("- Total Comments: %d", s.stats.TotalComments)
			log.Printf("- Total Likes: %d", s.stats.TotalLikes)
			log.Printf("- Failed Requests: %d", s.stats.FailedRequests)
			s.stats.mu.RUnlock()
		}
	}
}

// SimulationMetrics holds the final metrics of the simulation
type SimulationMetrics struct {
	TotalFarmers      int
	TotalPosts        int
	TotalComments     int
	TotalLikes        int
	AverageLatency    time.Duration
	ErrorCount        int
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics
func (s *Simulator) GetMetrics() SimulationMetrics {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	elapsed := time.Since(s.stats.StartTime)
	requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()

	s.mu.RLock()
	farmers := len(s.farmers)
	s.mu.RUnlock()

	return SimulationMetrics{
		TotalFarmers:      farmers,
		TotalPosts:        s.stats.TotalPosts,
		TotalComments:     s.stats.TotalComments,
		TotalLikes:        s.stats.TotalLikes,
		AverageLatency:    s.stats.AverageLatency,
		ErrorCount:        int(s.stats.FailedRequests),
		RequestsPerSecond: requestRate,
	}
}
