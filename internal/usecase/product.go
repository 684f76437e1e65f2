package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

// ProductUsecase defines the product use cases. Create/update/delete are
// admin-only; the route guard enforces that before these run.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, actor *model.User, params CreateProductParams) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProductIDs(ctx context.Context) ([]bson.ObjectID, error)
	UpdateProduct(ctx context.Context, id string, params repository.UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CreateProductParams defines the parameters for creating a product.
type CreateProductParams struct {
	Name         string
	ImageURL     string
	CloudinaryID string
	Type         string
	Category     string
	Description  string
	Price        float64
	CountInStock int
}

type productUsecase struct {
	productRepo repository.ProductRepository
}

// NewProductUsecase creates a new ProductUsecase.
func NewProductUsecase(productRepo repository.ProductRepository) ProductUsecase {
	return &productUsecase{productRepo: productRepo}
}

func (u *productUsecase) CreateProduct(
	ctx context.Context,
	actor *model.User,
	params CreateProductParams,
) (*model.Product, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	productType := params.Type
	if productType == "" {
		productType = model.ProductTypeRegular
	}

	return u.productRepo.CreateProduct(ctx, &model.Product{
		User:         actor.ID,
		Name:         params.Name,
		ImageURL:     params.ImageURL,
		CloudinaryID: params.CloudinaryID,
		Type:         productType,
		Category:     params.Category,
		Description:  params.Description,
		Price:        params.Price,
		CountInStock: params.CountInStock,
	})
}

func (u *productUsecase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := u.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

func (u *productUsecase) ListProductIDs(ctx context.Context) ([]bson.ObjectID, error) {
	return u.productRepo.ListProductIDs(ctx)
}

func (u *productUsecase) UpdateProduct(
	ctx context.Context,
	id string,
	params repository.UpdateProductParams,
) (*model.Product, error) {
	product, err := u.productRepo.UpdateProduct(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

func (u *productUsecase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := u.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}

		return err
	}

	return nil
}
