// internal/database/farmer_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FarmerDocument represents the MongoDB schema for a farmer account.
type FarmerDocument struct {
	ID                string    `bson:"_id"`
	Name              string    `bson:"name"`
	Mobile            string    `bson:"mobile"`
	Village           string    `bson:"village"`
	State             string    `bson:"state"`
	Crops             []string  `bson:"crops"`
	PreferredLanguage string    `bson:"preferredlanguage"`
	AvatarURL         string    `bson:"avatarurl,omitempty"`
	HashedPassword    string    `bson:"hashedpassword"`
	CreatedAt         time.Time `bson:"createdat"`
	LastActive        time.Time `bson:"lastactive"`
}

func farmerToDocument(farmer *models.Farmer) *FarmerDocument {
	return &FarmerDocument{
		ID:                farmer.ID.String(),
		Name:              farmer.Name,
		Mobile:            farmer.Mobile,
		Village:           farmer.Village,
		State:             farmer.State,
		Crops:             farmer.Crops,
		PreferredLanguage: farmer.PreferredLanguage,
		AvatarURL:         farmer.AvatarURL,
		HashedPassword:    farmer.HashedPassword,
		CreatedAt:         farmer.CreatedAt,
		LastActive:        farmer.LastActive,
	}
}

func documentToFarmer(doc *FarmerDocument) (*models.Farmer, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid farmer ID: %v", err)
	}

	return &models.Farmer{
		ID:                id,
		Name:              doc.Name,
		Mobile:            doc.Mobile,
		Village:           doc.Village,
		State:             doc.State,
		Crops:             doc.Crops,
		PreferredLanguage: doc.PreferredLanguage,
		AvatarURL:         doc.AvatarURL,
		HashedPassword:    doc.HashedPassword,
		CreatedAt:         doc.CreatedAt,
		LastActive:        doc.LastActive,
	}, nil
}

// SaveFarmer creates or updates a farmer account. A duplicate mobile number
// surfaces as a unique index violation.
func (m *MongoDB) SaveFarmer(ctx context.Context, farmer *models.Farmer) error {
	doc := farmerToDocument(farmer)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": farmer.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Farmers.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrFarmerExists, "Mobile number already registered", err)
	}
	return err
}

// GetFarmer retrieves a farmer by ID.
func (m *MongoDB) GetFarmer(ctx context.Context, id uuid.UUID) (*models.Farmer, error) {
	var doc FarmerDocument

	err := m.Farmers.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewFarmerNotFoundError(id.String())
	}
	if err != nil {
		return nil, err
	}

	return documentToFarmer(&doc)
}

// GetFarmerByMobile retrieves a farmer by mobile number, used for login.
func (m *MongoDB) GetFarmerByMobile(ctx context.Context, mobile string) (*models.Farmer, error) {
	var doc FarmerDocument

	err := m.Farmers.FindOne(ctx, bson.M{"mobile": mobile}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrFarmerNotFound, "No account for mobile number", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToFarmer(&doc)
}

// UpdateFarmerProfile updates the mutable profile fields of a farmer.
func (m *MongoDB) UpdateFarmerProfile(ctx context.Context, id uuid.UUID, village, state, language string, crops []string) error {
	update := bson.M{"$set": bson.M{
		"village":           village,
		"state":             state,
		"preferredlanguage": language,
		"crops":             crops,
	}}

	result, err := m.Farmers.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewFarmerNotFoundError(id.String())
	}
	return nil
}

// UpdateFarmerActivity records the farmer's last-active timestamp.
func (m *MongoDB) UpdateFarmerActivity(ctx context.Context, id uuid.UUID) error {
	update := bson.M{"$set": bson.M{"lastactive": time.Now()}}
	_, err := m.Farmers.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	return err
}
