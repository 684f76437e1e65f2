package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
)

// ProductRepository defines the interface for product-related database
// operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	ListProductIDs(ctx context.Context) ([]bson.ObjectID, error)
	ListByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Product, error)

	// SetAggregates overwrites the derived rating and review count.
	SetAggregates(ctx context.Context, id bson.ObjectID, rating float64, numReviews int) error

	// PushReviewRef appends a review id to the product's review-ref list.
	PushReviewRef(ctx context.Context, id bson.ObjectID, reviewID bson.ObjectID) error

	// PullReviewRef removes a review id from the product's review-ref list.
	PullReviewRef(ctx context.Context, id bson.ObjectID, reviewID bson.ObjectID) error
}

// UpdateProductParams defines the optional parameters for updating a
// product. Only the fields that are not nil will be updated.
type UpdateProductParams struct {
	Name         *string
	ImageURL     *string
	CloudinaryID *string
	Type         *string
	Category     *string
	Description  *string
	Price        *float64
	CountInStock *int
}

const productCollection = "products"

type productMongoRepository struct {
	db *mongo.Database
}

// NewProductMongoRepository creates a MongoDB product repository.
func NewProductMongoRepository(db *mongo.Database) ProductRepository {
	return &productMongoRepository{db: db}
}

func (r *productMongoRepository) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Reviews == nil {
		product.Reviews = []bson.ObjectID{}
	}

	result, err := r.db.Collection(productCollection).InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		product.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return product, nil
}

func (r *productMongoRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := r.db.Collection(productCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productMongoRepository) UpdateProduct(
	ctx context.Context,
	id string,
	params UpdateProductParams,
) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.ImageURL != nil {
		updateMap["imageUrl"] = *params.ImageURL
	}
	if params.CloudinaryID != nil {
		updateMap["cloudinaryId"] = *params.CloudinaryID
	}
	if params.Type != nil {
		updateMap["type"] = *params.Type
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Price != nil {
		updateMap["price"] = *params.Price
	}
	if params.CountInStock != nil {
		updateMap["countInStock"] = *params.CountInStock
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no product fields to update")
	}

	updateMap["updatedAt"] = time.Now()

	result := r.db.Collection(productCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productMongoRepository) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(productCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productMongoRepository) ListProducts(ctx context.Context) ([]*model.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(productCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productMongoRepository) ListProductIDs(ctx context.Context) ([]bson.ObjectID, error) {
	findOptions := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(productCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]bson.ObjectID, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	return ids, nil
}

func (r *productMongoRepository) ListByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Product, error) {
	cursor, err := r.db.Collection(productCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productMongoRepository) SetAggregates(
	ctx context.Context,
	id bson.ObjectID,
	rating float64,
	numReviews int,
) error {
	update := bson.M{
		"$set": bson.M{
			"rating":     rating,
			"numReviews": numReviews,
			"updatedAt":  time.Now(),
		},
	}

	result, err := r.db.Collection(productCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *productMongoRepository) PushReviewRef(ctx context.Context, id bson.ObjectID, reviewID bson.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"reviews": reviewID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	_, err := r.db.Collection(productCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *productMongoRepository) PullReviewRef(ctx context.Context, id bson.ObjectID, reviewID bson.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"reviews": reviewID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	_, err := r.db.Collection(productCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
