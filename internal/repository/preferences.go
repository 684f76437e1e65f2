package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
)

// PreferencesRepository defines the interface for preferences-related
// database operations.
type PreferencesRepository interface {
	CreatePreferences(ctx context.Context, prefs *model.Preferences) (*model.Preferences, error)
	GetPreferencesByUser(ctx context.Context, userID bson.ObjectID) (*model.Preferences, error)
	UpdatePreferences(ctx context.Context, id string, params UpdatePreferencesParams) (*model.Preferences, error)
	DeletePreferences(ctx context.Context, id string) (*model.Preferences, error)
}

// UpdatePreferencesParams defines the optional parameters for updating a
// preferences record. Only the fields that are not nil will be updated.
type UpdatePreferencesParams struct {
	MonthlyDelivery *bool
	DoNotAdd        *[]string
	Order           *bson.ObjectID
}

const preferencesCollection = "preferences"

type preferencesMongoRepository struct {
	db *mongo.Database
}

// NewPreferencesMongoRepository creates a MongoDB preferences repository and
// ensures the unique per-user index.
func NewPreferencesMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) PreferencesRepository {
	collection := db.Collection(preferencesCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create preferences indexes")
	}

	return &preferencesMongoRepository{db: db}
}

func (r *preferencesMongoRepository) CreatePreferences(
	ctx context.Context,
	prefs *model.Preferences,
) (*model.Preferences, error) {
	now := time.Now()
	prefs.CreatedAt = now
	prefs.UpdatedAt = now
	if prefs.DoNotAdd == nil {
		prefs.DoNotAdd = []string{}
	}

	result, err := r.db.Collection(preferencesCollection).InsertOne(ctx, prefs)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		prefs.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return prefs, nil
}

func (r *preferencesMongoRepository) GetPreferencesByUser(
	ctx context.Context,
	userID bson.ObjectID,
) (*model.Preferences, error) {
	var prefs model.Preferences
	if err := r.db.Collection(preferencesCollection).FindOne(ctx, bson.M{"user": userID}).Decode(&prefs); err != nil {
		return nil, err
	}

	return &prefs, nil
}

func (r *preferencesMongoRepository) UpdatePreferences(
	ctx context.Context,
	id string,
	params UpdatePreferencesParams,
) (*model.Preferences, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.MonthlyDelivery != nil {
		updateMap["monthlyDelivery"] = *params.MonthlyDelivery
	}
	if params.DoNotAdd != nil {
		updateMap["doNotAdd"] = *params.DoNotAdd
	}
	if params.Order != nil {
		updateMap["order"] = *params.Order
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no preferences fields to update")
	}

	updateMap["updatedAt"] = time.Now()

	result := r.db.Collection(preferencesCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var prefs model.Preferences
	if err := result.Decode(&prefs); err != nil {
		return nil, err
	}

	return &prefs, nil
}

func (r *preferencesMongoRepository) DeletePreferences(ctx context.Context, id string) (*model.Preferences, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(preferencesCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var prefs model.Preferences
	if err := result.Decode(&prefs); err != nil {
		return nil, err
	}

	return &prefs, nil
}
