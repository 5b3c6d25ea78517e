package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is the durable (farmerID, postID) relation backing a post's like count.
// The likes collection, not client state, decides whether a toggle increments
// or decrements the counter.
type Like struct {
	FarmerID  uuid.UUID `json:"farmerId"`
	PostID    uuid.UUID `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
