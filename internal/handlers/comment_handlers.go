// internal/handlers/comment_handlers.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kisan-ai/internal/engine/actors"
	"kisan-ai/internal/middleware"
	"kisan-ai/internal/websocket"

	"github.com/google/uuid"
)

// CreateCommentRequest represents a request to comment on a post
type CreateCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// HandleComment handles comment creation and listing for a post
func (s *Server) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleCreateComment(w, r)
		case http.MethodGet:
			if r.URL.Query().Get("id") != "" {
				s.handleGetComment(w, r)
				return
			}
			s.handleGetPostComments(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := middleware.GetFarmerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreateCommentRequest
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
		s.Engine.GetCommentActor(),
		&actors.CreateCommentMsg{
			PostID:   postID,
			AuthorID: farmerID,
			Content:  req.Content,
		},
		s.RequestTimeout,
	)

	result, err := future.Result()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create comment: %v", err), http.StatusInternalServerError)
		return
	}
	if respondAppError(w, result) {
		return
	}

	created, ok := result.(*actors.CreateCommentResult)
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.Hub.BroadcastEvent(websocket.EventCommentAdded, created)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(
		s.Engine.GetCommentActor(),
		&actors.GetCommentMsg{CommentID: commentID},
		s.RequestTimeout,
	)
	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to fetch comment", http.StatusInternalServerError)
		return
	}
	if respondAppError(w, result) {
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetPostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.URL.Query().Get("postId"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	future := s.Context.RequestFuture(
		s.Engine.GetCommentActor(),
		&actors.GetCommentsForPostMsg{PostID: postID},
		s.RequestTimeout,
	)
	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to fetch comments", http.StatusInternalServerError)
		return
	}
	if respondAppError(w, result) {
		return
	}
	respondJSON(w, http.StatusOK, result)
}
