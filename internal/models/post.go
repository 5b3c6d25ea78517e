package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID           uuid.UUID `json:"id"`
	AuthorID     uuid.UUID `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int       `json:"likeCount"`    // Number of distinct farmers currently liking the post
	CommentCount int       `json:"commentCount"` // Number of comments attached to the post
}
