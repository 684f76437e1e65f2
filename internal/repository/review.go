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

// ReviewRepository defines the interface for review-related database
// operations.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) (*model.Review, error)
	GetReview(ctx context.Context, id string) (*model.Review, error)
	UpdateReview(ctx context.Context, id string, params UpdateReviewParams) (*model.Review, error)
	DeleteReview(ctx context.Context, id string) (*model.Review, error)
	ListReviews(ctx context.Context) ([]*model.Review, error)
	ListByProduct(ctx context.Context, productID bson.ObjectID) ([]*model.Review, error)
	ListByProductIDs(ctx context.Context, productIDs []bson.ObjectID) ([]*model.Review, error)
}

// UpdateReviewParams defines the optional parameters for updating a review.
// Only the fields that are not nil will be updated.
type UpdateReviewParams struct {
	Title        *string
	Comment      *string
	Rating       *float64
	IsSanctioned *bool
}

const reviewCollection = "reviews"

type reviewMongoRepository struct {
	db *mongo.Database
}

// NewReviewMongoRepository creates a MongoDB review repository and ensures
// the compound unique index preventing a second review for the same
// (user, product) pair.
func NewReviewMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ReviewRepository {
	collection := db.Collection(reviewCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "product", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "product", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create review indexes")
	}

	return &reviewMongoRepository{db: db}
}

func (r *reviewMongoRepository) CreateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := r.db.Collection(reviewCollection).InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		review.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return review, nil
}

func (r *reviewMongoRepository) GetReview(ctx context.Context, id string) (*model.Review, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var review model.Review
	if err := r.db.Collection(reviewCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&review); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *reviewMongoRepository) UpdateReview(
	ctx context.Context,
	id string,
	params UpdateReviewParams,
) (*model.Review, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Comment != nil {
		updateMap["comment"] = *params.Comment
	}
	if params.Rating != nil {
		updateMap["rating"] = *params.Rating
	}
	if params.IsSanctioned != nil {
		updateMap["isSanctioned"] = *params.IsSanctioned
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no review fields to update")
	}

	updateMap["updatedAt"] = time.Now()

	result := r.db.Collection(reviewCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var review model.Review
	if err := result.Decode(&review); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *reviewMongoRepository) DeleteReview(ctx context.Context, id string) (*model.Review, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(reviewCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var review model.Review
	if err := result.Decode(&review); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *reviewMongoRepository) ListReviews(ctx context.Context) ([]*model.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(reviewCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewMongoRepository) ListByProduct(ctx context.Context, productID bson.ObjectID) ([]*model.Review, error) {
	cursor, err := r.db.Collection(reviewCollection).Find(ctx, bson.M{"product": productID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewMongoRepository) ListByProductIDs(
	ctx context.Context,
	productIDs []bson.ObjectID,
) ([]*model.Review, error) {
	cursor, err := r.db.Collection(reviewCollection).Find(ctx, bson.M{"product": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}
