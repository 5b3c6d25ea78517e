// internal/database/post_repository.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument represents the MongoDB schema for a community post.
type PostDocument struct {
	ID           string    `bson:"_id"`
	AuthorID     string    `bson:"authorid"`
	AuthorName   string    `bson:"authorname"`
	Content      string    `bson:"content"`
	ImageURL     string    `bson:"imageurl,omitempty"`
	CreatedAt    time.Time `bson:"createdat"`
	LikeCount    int       `bson:"likecount"`
	CommentCount int       `bson:"commentcount"`
}

// ModelToDocument converts a Post model to a MongoDB document.
func (m *MongoDB) ModelToDocument(post *models.Post) *PostDocument {
	return &PostDocument{
		ID:           post.ID.String(),
		AuthorID:     post.AuthorID.String(),
		AuthorName:   post.AuthorName,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		CreatedAt:    post.CreatedAt,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
	}
}

// DocumentToModel converts a MongoDB document to a Post model.
func (m *MongoDB) DocumentToModel(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %v", err)
	}

	return &models.Post{
		ID:           id,
		AuthorID:     authorID,
		AuthorName:   doc.AuthorName,
		Content:      doc.Content,
		ImageURL:     doc.ImageURL,
		CreatedAt:    doc.CreatedAt,
		LikeCount:    doc.LikeCount,
		CommentCount: doc.CommentCount,
	}, nil
}

// SavePost creates or updates a post in MongoDB.
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	doc := m.ModelToDocument(post)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": post.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Posts.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetPost retrieves a post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, err
	}

	return m.DocumentToModel(&doc)
}

// GetRecentPosts retrieves the community feed, newest posts first.
func (m *MongoDB) GetRecentPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := m.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding post document: %v", err)
			continue
		}

		post, err := m.DocumentToModel(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, nil
}

// GetFarmerPosts retrieves all posts created by a farmer, newest first.
func (m *MongoDB) GetFarmerPosts(ctx context.Context, farmerID uuid.UUID) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})

	cursor, err := m.Posts.Find(ctx, bson.M{"authorid": farmerID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding post document: %v", err)
			continue
		}

		post, err := m.DocumentToModel(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, nil
}
