// simulator/activities.go
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

var postTemplates = []string{
	"My %s crop is looking healthy this week",
	"Anyone seeing leaf spots on %s in their area?",
	"Got a good price for %s at the mandi today",
	"When is the right time to irrigate %s after sowing?",
	"Sharing a photo of my %s field after the rain",
}

var commentTemplates = []string{
	"Very useful, thanks for sharing",
	"We have the same problem in our village",
	"Try neem oil spray, it worked for me",
	"Which variety are you growing?",
	"Good yield this season, congratulations",
}

var cropNames = []string{"wheat", "soybean", "cotton", "tomato", "onion", "paddy", "gram"}

func (s *Simulator) SimulateActivities(ctx context.Context) error {
	log.Printf("Starting activities simulation...")

	// Comments and likes wait until there is something to react to.
	postsAvailable := make(chan struct{})

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulatePosts(ctx)
	}()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.stats.mu.RLock()
				enough := s.stats.TotalPosts >= 10
				s.stats.mu.RUnlock()
				if enough {
					close(postsAvailable)
					return
				}
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-postsAvailable:
			s.simulateComments(ctx)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-postsAvailable:
			s.simulateLikes(ctx)
		}
	}()

	wg.Wait()
	return nil
}

// seedInitialPosts has every tenth farmer publish one post so the feed is not
// empty when comment and like loops start.
func (s *Simulator) seedInitialPosts(ctx context.Context) error {
	s.mu.RLock()
	farmers := s.farmers
	s.mu.RUnlock()

	for i, farmer := range farmers {
		if i%10 != 0 {
			continue
		}
		if err := s.createPost(farmer); err != nil {
			log.Printf("Seed post failed for %s: %v", farmer.Name, err)
		}
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

func (s *Simulator) createPost(farmer *SimulatedFarmer) error {
	content := fmt.Sprintf(postTemplates[rand.Intn(len(postTemplates))], cropNames[rand.Intn(len(cropNames))])

	resp, err := s.makeRequest("POST", "/posts", farmer.Token, map[string]interface{}{
		"content": content,
	})
	if err != nil {
		return err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &created); err != nil {
		return fmt.Errorf("failed to parse post response: %v", err)
	}
	postID, err := uuid.Parse(created.ID)
	if err != nil {
		return fmt.Errorf("invalid post ID in response: %v", err)
	}

	s.mu.Lock()
	farmer.Posts = append(farmer.Posts, postID)
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.TotalPosts++
	s.stats.mu.Unlock()
	return nil
}

func (s *Simulator) simulatePosts(ctx context.Context) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			farmer := s.randomFarmer()
			if farmer == nil {
				continue
			}
			if rand.Float64() < s.config.PostFrequency/120.0 {
				if err := s.createPost(farmer); err != nil {
					log.Printf("Post failed for %s: %v", farmer.Name, err)
				}
			}
		}
	}
}

func (s *Simulator) simulateComments(ctx context.Context) {
	log.Printf("Starting comments after posts available...")
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			farmer := s.randomFarmer()
			postID := s.randomPost()
			if farmer == nil || postID == uuid.Nil {
				continue
			}
			if rand.Float64() >= s.config.CommentFrequency/120.0 {
				continue
			}

			_, err := s.makeRequest("POST", "/comments", farmer.Token, map[string]interface{}{
				"postId":  postID.String(),
				"content": commentTemplates[rand.Intn(len(commentTemplates))],
			})
			if err != nil {
				log.Printf("Comment failed for %s: %v", farmer.Name, err)
				continue
			}

			s.stats.mu.Lock()
			s.stats.TotalComments++
			s.stats.mu.Unlock()
		}
	}
}

func (s *Simulator) simulateLikes(ctx context.Context) {
	log.Printf("Starting likes after posts available...")
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			farmer := s.randomFarmer()
			postID := s.randomPost()
			if farmer == nil || postID == uuid.Nil {
				continue
			}
			if rand.Float64() >= s.config.LikeFrequency/120.0 {
				continue
			}

			resp, err := s.makeRequest("POST", "/posts/like", farmer.Token, map[string]interface{}{
				"postId": postID.String(),
			})
			if err != nil {
				log.Printf("Like failed for %s: %v", farmer.Name, err)
				continue
			}

			var likeResp struct {
				Liked     bool `json:"liked"`
				LikeCount int  `json:"likeCount"`
			}
			if err := json.Unmarshal(resp, &likeResp); err == nil {
				s.mu.Lock()
				farmer.LikedPosts[postID] = likeResp.Liked
				s.mu.Unlock()
			}

			s.stats.mu.Lock()
			s.stats.TotalLikes++
			s.stats.mu.Unlock()
		}
	}
}

func (s *Simulator) randomFarmer() *SimulatedFarmer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.farmers) == 0 {
		return nil
	}
	return s.farmers[rand.Intn(len(s.farmers))]
}

func (s *Simulator) randomPost() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []uuid.UUID
	for _, farmer := range s.farmers {
		all = append(all, farmer.Posts...)
	}
	if len(all) == 0 {
		return uuid.Nil
	}
	return all[rand.Intn(len(all))]
}
