// internal/database/comment_repository.go
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

// CommentDocument represents the MongoDB schema for a comment.
type CommentDocument struct {
	ID         string    `bson:"_id"`
	PostID     string    `bson:"postid"`
	AuthorID   string    `bson:"authorid"`
	AuthorName string    `bson:"authorname"`
	Content    string    `bson:"content"`
	CreatedAt  time.Time `bson:"createdat"`
}

func commentToDocument(comment *models.Comment) *CommentDocument {
	return &CommentDocument{
		ID:         comment.ID.String(),
		PostID:     comment.PostID.String(),
		AuthorID:   comment.AuthorID.String(),
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
}

func documentToComment(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}

	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %v", err)
	}

	return &models.Comment{
		ID:         id,
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: doc.AuthorName,
		Content:    doc.Content,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

// AddComment inserts a comment and increments the post's comment count inside
// one transaction, so the count can never drift from the number of comment
// documents. Returns the updated comment count alongside the stored comment.
func (m *MongoDB) AddComment(ctx context.Context, comment *models.Comment) (int, error) {
	session, err := m.Client.StartSession()
	if err != nil {
		return 0, utils.NewAppError(utils.ErrDatabase, "Failed to start session", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated PostDocument
		err := m.Posts.FindOneAndUpdate(sc,
			bson.M{"_id": comment.PostID.String()},
			bson.M{"$inc": bson.M{"commentcount": 1}},
			opts,
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrPostNotFound, "Post not found", err)
		}
		if err != nil {
			return nil, err
		}

		if _, err := m.Comments.InsertOne(sc, commentToDocument(comment)); err != nil {
			return nil, err
		}

		return updated.CommentCount, nil
	})
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			return 0, appErr
		}
		return 0, utils.NewAppError(utils.ErrDatabase, "Comment transaction failed", err)
	}

	return result.(int), nil
}

// GetComment retrieves a comment by its ID.
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToComment(&doc)
}

// GetPostComments retrieves all comments for a post, ordered by creation time ascending.
func (m *MongoDB) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: 1}})

	cursor, err := m.Comments.Find(ctx, bson.M{"postid": postID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding comment document: %v", err)
			continue
		}

		comment, err := documentToComment(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		comments = append(comments, comment)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return comments, nil
}

// GetAllComments loads every comment, used by the comment actor to warm its cache.
func (m *MongoDB) GetAllComments(ctx context.Context) ([]*models.Comment, error) {
	cursor, err := m.Comments.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding comment document: %v", err)
			continue
		}

		comment, err := documentToComment(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		comments = append(comments, comment)
	}

	return comments, cursor.Err()
}
