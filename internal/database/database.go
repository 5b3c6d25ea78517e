// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client       *mongo.Client
	Farmers      *mongo.Collection
	Posts        *mongo.Collection
	Comments     *mongo.Collection
	Likes        *mongo.Collection
	MarketPrices *mongo.Collection
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database(dbName)
	return &MongoDB{
		Client:       client,
		Farmers:      db.Collection("farmers"),
		Posts:        db.Collection("posts"),
		Comments:     db.Collection("comments"),
		Likes:        db.Collection("likes"),
		MarketPrices: db.Collection("market_prices"),
	}, nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// (farmerid, postid) index makes the like relation a set: a farmer can hold
// at most one like per post.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.Likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "farmerid", Value: 1},
			{Key: "postid", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create like index: %v", err)
	}

	_, err = m.Comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "postid", Value: 1},
			{Key: "createdat", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create comment index: %v", err)
	}

	_, err = m.Farmers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "mobile", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create farmer mobile index: %v", err)
	}

	_, err = m.Posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdat", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create post index: %v", err)
	}

	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
