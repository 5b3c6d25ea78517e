// internal/database/like_repository.go
package database

import (
	"context"
	"log"
	"time"

	"kisan-ai/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeDocument represents the MongoDB schema for the (farmer, post) like relation.
type LikeDocument struct {
	FarmerID  string    `bson:"farmerid"`
	PostID    string    `bson:"postid"`
	CreatedAt time.Time `bson:"createdat"`
}

// ToggleResult reports the committed state after a like toggle.
type ToggleResult struct {
	Liked     bool
	LikeCount int
}

// ToggleLike flips a farmer's like on a post and adjusts the post's like count,
// all inside a single multi-document transaction. The driver retries the
// transaction on transient write conflicts, so two concurrent toggles on the
// same post never lose an increment. The like document is the source of truth
// for the counter's sign: a toggle from a farmer who already holds a like
// always decrements, regardless of what the client believed.
func (m *MongoDB) ToggleLike(ctx context.Context, postID, farmerID uuid.UUID) (*ToggleResult, error) {
	session, err := m.Client.StartSession()
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "Failed to start session", err)
	}
	defer session.EndSession(ctx)

	likeFilter := bson.M{
		"farmerid": farmerID.String(),
		"postid":   postID.String(),
	}

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var delta int
		var liked bool

		findErr := m.Likes.FindOne(sc, likeFilter).Err()
		switch findErr {
		case mongo.ErrNoDocuments:
			doc := LikeDocument{
				FarmerID:  farmerID.String(),
				PostID:    postID.String(),
				CreatedAt: time.Now(),
			}
			if _, err := m.Likes.InsertOne(sc, doc); err != nil {
				return nil, err
			}
			delta = 1
			liked = true
		case nil:
			if _, err := m.Likes.DeleteOne(sc, likeFilter); err != nil {
				return nil, err
			}
			delta = -1
			liked = false
		default:
			return nil, findErr
		}

		// Read-modify-write of the counter happens on the post document
		// itself, in the same transaction as the relation change.
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated PostDocument
		err := m.Posts.FindOneAndUpdate(sc,
			bson.M{"_id": postID.String()},
			bson.M{"$inc": bson.M{"likecount": delta}},
			opts,
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", err)
		}
		if err != nil {
			return nil, err
		}

		return &ToggleResult{Liked: liked, LikeCount: updated.LikeCount}, nil
	})
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			return nil, appErr
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "Like transaction failed", err)
	}

	return result.(*ToggleResult), nil
}

// HasLiked reports whether a farmer currently holds a like on a post. Clients
// use this to initialize their liked flag on load instead of trusting local state.
func (m *MongoDB) HasLiked(ctx context.Context, postID, farmerID uuid.UUID) (bool, error) {
	err := m.Likes.FindOne(ctx, bson.M{
		"farmerid": farmerID.String(),
		"postid":   postID.String(),
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetFarmerLikes returns the IDs of all posts a farmer currently likes.
func (m *MongoDB) GetFarmerLikes(ctx context.Context, farmerID uuid.UUID) ([]uuid.UUID, error) {
	cursor, err := m.Likes.Find(ctx, bson.M{"farmerid": farmerID.String()})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var postIDs []uuid.UUID
	for cursor.Next(ctx) {
		var doc LikeDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding like document: %v", err)
			continue
		}
		postID, err := uuid.Parse(doc.PostID)
		if err != nil {
			log.Printf("Invalid post ID in like document: %v", err)
			continue
		}
		postIDs = append(postIDs, postID)
	}

	return postIDs, cursor.Err()
}
