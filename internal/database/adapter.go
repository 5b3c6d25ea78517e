// internal/database/adapter.go
package database

import (
	"context"

	"kisan-ai/internal/models"

	"github.com/google/uuid"
)

// DBAdapter is the storage surface the actor engine depends on. MongoDB is
// the production implementation; tests substitute an in-memory store.
type DBAdapter interface {
	// Posts
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetRecentPosts(ctx context.Context, limit int) ([]*models.Post, error)
	GetFarmerPosts(ctx context.Context, farmerID uuid.UUID) ([]*models.Post, error)

	// Likes
	ToggleLike(ctx context.Context, postID, farmerID uuid.UUID) (*ToggleResult, error)
	HasLiked(ctx context.Context, postID, farmerID uuid.UUID) (bool, error)
	GetFarmerLikes(ctx context.Context, farmerID uuid.UUID) ([]uuid.UUID, error)

	// Comments
	AddComment(ctx context.Context, comment *models.Comment) (int, error)
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	GetAllComments(ctx context.Context) ([]*models.Comment, error)

	// Farmers
	SaveFarmer(ctx context.Context, farmer *models.Farmer) error
	GetFarmer(ctx context.Context, id uuid.UUID) (*models.Farmer, error)
	GetFarmerByMobile(ctx context.Context, mobile string) (*models.Farmer, error)
	UpdateFarmerProfile(ctx context.Context, id uuid.UUID, village, state, language string, crops []string) error
	UpdateFarmerActivity(ctx context.Context, id uuid.UUID) error
}
