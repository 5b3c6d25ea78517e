// internal/database/market_repository.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"kisan-ai/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MarketPriceDocument represents the MongoDB schema for a market price listing.
type MarketPriceDocument struct {
	ID        string    `bson:"_id"`
	Crop      string    `bson:"crop"`
	Price     float64   `bson:"price"`
	Unit      string    `bson:"unit"`
	Market    string    `bson:"market"`
	Trend     string    `bson:"trend"`
	Timestamp time.Time `bson:"timestamp"`
	Lat       float64   `bson:"lat"`
	Lon       float64   `bson:"lon"`
}

func marketPriceToDocument(p *models.MarketPrice) *MarketPriceDocument {
	return &MarketPriceDocument{
		ID:        p.ID,
		Crop:      p.Crop,
		Price:     p.Price,
		Unit:      p.Unit,
		Market:    p.Market,
		Trend:     p.Trend,
		Timestamp: p.Timestamp,
		Lat:       p.Lat,
		Lon:       p.Lon,
	}
}

func documentToMarketPrice(doc *MarketPriceDocument) *models.MarketPrice {
	return &models.MarketPrice{
		ID:        doc.ID,
		Crop:      doc.Crop,
		Price:     doc.Price,
		Unit:      doc.Unit,
		Market:    doc.Market,
		Trend:     doc.Trend,
		Timestamp: doc.Timestamp,
		Lat:       doc.Lat,
		Lon:       doc.Lon,
	}
}

// ListMarketPrices returns price listings, optionally filtered by crop name.
func (m *MongoDB) ListMarketPrices(ctx context.Context, crop string) ([]*models.MarketPrice, error) {
	filter := bson.M{}
	if crop != "" {
		filter["crop"] = crop
	}

	opts := options.Find().SetSort(bson.D{{Key: "crop", Value: 1}})
	cursor, err := m.MarketPrices.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var prices []*models.MarketPrice
	for cursor.Next(ctx) {
		var doc MarketPriceDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding market price document: %v", err)
			continue
		}
		prices = append(prices, documentToMarketPrice(&doc))
	}

	return prices, cursor.Err()
}

// SeedMarketPrices upserts the given listings. Called at startup when the
// collection is empty so the market table is never blank on a fresh install.
func (m *MongoDB) SeedMarketPrices(ctx context.Context, prices []*models.MarketPrice) error {
	for _, p := range prices {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"_id": p.ID}
		update := bson.M{"$set": marketPriceToDocument(p)}

		if _, err := m.MarketPrices.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to seed market price %s: %v", p.ID, err)
		}
	}
	return nil
}

// CountMarketPrices returns the number of stored listings.
func (m *MongoDB) CountMarketPrices(ctx context.Context) (int64, error) {
	return m.MarketPrices.CountDocuments(ctx, bson.M{})
}
