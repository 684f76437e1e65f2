package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

// OrderUsecase defines the order use cases. Orders are visible and mutable
// only to their owner, except that admins may act on any order.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, actor *model.User, params CreateOrderParams) (*model.Order, error)
	GetOrder(ctx context.Context, actor *model.User, id string) (*model.Order, error)
	ListOrders(ctx context.Context, actor *model.User) ([]*model.Order, error)
	UpdateOrder(ctx context.Context, actor *model.User, id string, params repository.UpdateOrderParams) (*model.Order, error)
	DeleteOrder(ctx context.Context, actor *model.User, id string) error
}

// CreateOrderParams defines the parameters for creating an order.
type CreateOrderParams struct {
	OrderItems      []model.OrderItem
	ShippingAddress model.Address
	TotalPrice      float64
}

type orderUsecase struct {
	orderRepo repository.OrderRepository
}

// NewOrderUsecase creates a new OrderUsecase.
func NewOrderUsecase(orderRepo repository.OrderRepository) OrderUsecase {
	return &orderUsecase{orderRepo: orderRepo}
}

func (u *orderUsecase) CreateOrder(
	ctx context.Context,
	actor *model.User,
	params CreateOrderParams,
) (*model.Order, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	return u.orderRepo.CreateOrder(ctx, &model.Order{
		User:            actor.ID,
		OrderItems:      params.OrderItems,
		ShippingAddress: params.ShippingAddress,
		TotalPrice:      params.TotalPrice,
	})
}

func (u *orderUsecase) GetOrder(ctx context.Context, actor *model.User, id string) (*model.Order, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	order, err := u.orderRepo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}

		return nil, err
	}

	if order.User != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	return order, nil
}

// ListOrders returns the actor's own orders; admins see all orders.
func (u *orderUsecase) ListOrders(ctx context.Context, actor *model.User) ([]*model.Order, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	if actor.IsAdmin() {
		return u.orderRepo.ListOrders(ctx)
	}

	return u.orderRepo.ListByUser(ctx, actor.ID)
}

func (u *orderUsecase) UpdateOrder(
	ctx context.Context,
	actor *model.User,
	id string,
	params repository.UpdateOrderParams,
) (*model.Order, error) {
	// Ownership check also verifies the order exists.
	if _, err := u.GetOrder(ctx, actor, id); err != nil {
		return nil, err
	}

	order, err := u.orderRepo.UpdateOrder(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}

		return nil, err
	}

	return order, nil
}

func (u *orderUsecase) DeleteOrder(ctx context.Context, actor *model.User, id string) error {
	if _, err := u.GetOrder(ctx, actor, id); err != nil {
		return err
	}

	if _, err := u.orderRepo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOrderNotFound
		}

		return err
	}

	return nil
}
