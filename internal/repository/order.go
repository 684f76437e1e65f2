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

// OrderRepository defines the interface for order-related database
// operations.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	UpdateOrder(ctx context.Context, id string, params UpdateOrderParams) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context) ([]*model.Order, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]*model.Order, error)
}

// UpdateOrderParams defines the optional parameters for updating an order.
// Only the fields that are not nil will be updated.
type UpdateOrderParams struct {
	ShippingAddress *model.Address
	PaymentResult   *model.PaymentResult
	IsPaid          *bool
	PaidAt          *time.Time
	IsDelivered     *bool
	DeliveredAt     *time.Time
}

const orderCollection = "orders"

type orderMongoRepository struct {
	db *mongo.Database
}

// NewOrderMongoRepository creates a MongoDB order repository.
func NewOrderMongoRepository(db *mongo.Database) OrderRepository {
	return &orderMongoRepository{db: db}
}

func (r *orderMongoRepository) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	result, err := r.db.Collection(orderCollection).InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		order.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return order, nil
}

func (r *orderMongoRepository) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var order model.Order
	if err := r.db.Collection(orderCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderMongoRepository) UpdateOrder(
	ctx context.Context,
	id string,
	params UpdateOrderParams,
) (*model.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.ShippingAddress != nil {
		updateMap["shippingAddress"] = *params.ShippingAddress
	}
	if params.PaymentResult != nil {
		updateMap["paymentResult"] = *params.PaymentResult
	}
	if params.IsPaid != nil {
		updateMap["isPaid"] = *params.IsPaid
	}
	if params.PaidAt != nil {
		updateMap["paidAt"] = *params.PaidAt
	}
	if params.IsDelivered != nil {
		updateMap["isDelivered"] = *params.IsDelivered
	}
	if params.DeliveredAt != nil {
		updateMap["deliveredAt"] = *params.DeliveredAt
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no order fields to update")
	}

	updateMap["updatedAt"] = time.Now()

	result := r.db.Collection(orderCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var order model.Order
	if err := result.Decode(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderMongoRepository) DeleteOrder(ctx context.Context, id string) (*model.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(orderCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var order model.Order
	if err := result.Decode(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderMongoRepository) ListOrders(ctx context.Context) ([]*model.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(orderCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderMongoRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]*model.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(orderCollection).Find(ctx, bson.M{"user": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}
