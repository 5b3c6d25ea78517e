// internal/handlers/post_handlers.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kisan-ai/internal/engine/actors"
	"kisan-ai/internal/middleware"
	"kisan-ai/internal/models"
	"kisan-ai/internal/types"
	"kisan-ai/internal/websocket"

	"github.com/google/uuid"
)

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// LikeRequest represents a request to toggle a like on a post
type LikeRequest struct {
	PostID string `json:"postId"`
}

// HandlePost handles post creation and single-post lookups
func (s *Server) HandlePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleCreatePost(w, r)
		case http.MethodGet:
			s.handleGetPost(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := middleware.GetFarmerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(
		s.Engine.GetFeedActor(),
		&actors.CreatePostMsg{
			Content:  req.Content,
			ImageURL: req.ImageURL,
			AuthorID: farmerID,
		},
		s.RequestTimeout,
	)

	result, err := future.Result()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create post: %v", err), http.StatusInternalServerError)
		return
	}
	if respondAppError(w, result) {
		return
	}

	post, ok := result.(*models.Post)
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.Hub.BroadcastEvent(websocket.EventPostCreated, post)
	respondJSON(w, http.StatusCreated, post)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	// ?author= lists a farmer's posts, ?id= fetches a single post.
	if authorStr := r.URL.Query().Get("author"); authorStr != "" {
		authorID, err := uuid.Parse(authorStr)
		if err != nil {
			http.Error(w, "Invalid author ID", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetFeedActor(),
			&actors.GetFarmerPostsMsg{FarmerID: authorID},
			s.RequestTimeout,
		)
		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to fetch posts", http.StatusInternalServerError)
			return
		}
		if respondAppError(w, result) {
			return
		}
		respondJSON(w, http.StatusOK, result)
		return
	}

	postID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(
		s.Engine.GetFeedActor(),
		&actors.GetPostMsg{PostID: postID},
		s.RequestTimeout,
	)
	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to fetch post", http.StatusInternalServerError)
		return
	}
	if respondAppError(w, result) {
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleFeed returns recent posts, newest first
func (s *Server) HandleFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if _, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil || limit < 0 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
		}

		future := s.Context.RequestFuture(
			s.Engine.GetFeedActor(),
			&actors.GetFeedMsg{Limit: limit},
			s.RequestTimeout,
		)
		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to fetch feed", http.StatusInternalServerError)
			return
		}
		if respondAppError(w, result) {
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleLikePost toggles the authenticated farmer's like on a post. GET
// reports like state instead: with ?postId= whether this farmer likes that
// post, without it the IDs of every post they like.
func (s *Server) HandleLikePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			s.handleGetLikes(w, r)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		farmerID, ok := middleware.GetFarmerIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req LikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetFeedActor(),
			&actors.ToggleLikeMsg{PostID: postID, FarmerID: farmerID},
			s.RequestTimeout,
		)
		result, err := future.Result()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to toggle like: %v", err), http.StatusInternalServerError)
			return
		}
		if respondAppError(w, result) {
			return
		}

		likeResp, ok := result.(*types.LikeResponse)
		if !ok {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		s.Hub.BroadcastEvent(websocket.EventLikeUpdated, likeResp)
		respondJSON(w, http.StatusOK, likeResp)
	}
}

func (s *Server) handleGetLikes(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := middleware.GetFarmerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if postIDStr := r.URL.Query().Get("postId"); postIDStr != "" {
		postID, err := uuid.Parse(postIDStr)
		if err != nil {
			http.Error(w, "Invalid post ID", http.StatusBadRequest)
			return
		}

		future := s.Context.RequestFuture(
			s.Engine.GetFeedActor(),
			&actors.HasLikedMsg{PostID: postID, FarmerID: farmerID},
			s.RequestTimeout,
		)
		result, err := future.Result()
		if err != nil {
			http.Error(w, "Failed to check like state", http.StatusInternalServerError)
			return
		}
		if respondAppError(w, result) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"postId": postID.String(),
			"liked":  result,
		})
		return
	}

	postIDs, err := s.MongoDB.GetFarmerLikes(r.Context(), farmerID)
	if err != nil {
		http.Error(w, "Failed to fetch likes", http.StatusInternalServerError)
		return
	}
	if postIDs == nil {
		postIDs = []uuid.UUID{}
	}
	respondJSON(w, http.StatusOK, postIDs)
}
