package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

// ReviewUsecase defines the review use cases, including the synchronous
// recomputation of the owning product's derived rating and review count
// after every review write.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, actor *model.User, params CreateReviewParams) (*model.Review, error)
	GetReview(ctx context.Context, id string) (*model.Review, error)
	ListReviews(ctx context.Context) ([]*model.Review, error)
	UpdateReview(ctx context.Context, actor *model.User, id string, params repository.UpdateReviewParams) (*model.Review, error)
	DeleteReview(ctx context.Context, actor *model.User, id string) error
}

// CreateReviewParams defines the parameters for creating a review.
type CreateReviewParams struct {
	ProductID string
	Title     string
	Comment   string
	Rating    float64
}

type reviewUsecase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *zerolog.Logger
}

// NewReviewUsecase creates a new ReviewUsecase.
func NewReviewUsecase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	logger *zerolog.Logger,
) ReviewUsecase {
	return &reviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (u *reviewUsecase) CreateReview(
	ctx context.Context,
	actor *model.User,
	params CreateReviewParams,
) (*model.Review, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	productID, err := bson.ObjectIDFromHex(params.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if _, err := u.productRepo.GetProduct(ctx, params.ProductID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	review, err := u.reviewRepo.CreateReview(ctx, &model.Review{
		Title:   params.Title,
		Comment: params.Comment,
		Rating:  params.Rating,
		Product: productID,
		User:    actor.ID,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateReview
		}

		return nil, err
	}

	if err := u.productRepo.PushReviewRef(ctx, productID, review.ID); err != nil {
		u.logger.Error().Err(err).
			Str("product", productID.Hex()).
			Msg("failed to attach review reference to product")
	}

	u.recomputeAggregates(ctx, productID)

	return review, nil
}

func (u *reviewUsecase) GetReview(ctx context.Context, id string) (*model.Review, error) {
	review, err := u.reviewRepo.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}

		return nil, err
	}

	return review, nil
}

func (u *reviewUsecase) ListReviews(ctx context.Context) ([]*model.Review, error) {
	return u.reviewRepo.ListReviews(ctx)
}

// UpdateReview lets the owning user edit their review. Admins may not edit
// other users' reviews, only delete them.
func (u *reviewUsecase) UpdateReview(
	ctx context.Context,
	actor *model.User,
	id string,
	params repository.UpdateReviewParams,
) (*model.Review, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	existing, err := u.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.User != actor.ID {
		return nil, ErrForbidden
	}

	review, err := u.reviewRepo.UpdateReview(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}

		return nil, err
	}

	if params.Rating != nil {
		u.recomputeAggregates(ctx, review.Product)
	}

	return review, nil
}

// DeleteReview removes a review (owner or admin), pulls its reference from
// the product's review list, and recomputes the product aggregates.
func (u *reviewUsecase) DeleteReview(ctx context.Context, actor *model.User, id string) error {
	if actor == nil {
		return ErrUnauthorized
	}

	existing, err := u.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if existing.User != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if _, err := u.reviewRepo.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrReviewNotFound
		}

		return err
	}

	if err := u.productRepo.PullReviewRef(ctx, existing.Product, existing.ID); err != nil {
		u.logger.Error().Err(err).
			Str("product", existing.Product.Hex()).
			Msg("failed to detach review reference from product")
	}

	u.recomputeAggregates(ctx, existing.Product)

	return nil
}

// recomputeAggregates sets the product's rating to the mean of its current
// reviews (0 when there are none) and numReviews to their count. Aggregation
// is best-effort: a failure is logged and never rolls back the review write
// that triggered it.
func (u *reviewUsecase) recomputeAggregates(ctx context.Context, productID bson.ObjectID) {
	reviews, err := u.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		u.logger.Error().Err(err).
			Str("product", productID.Hex()).
			Msg("failed to load reviews for aggregation")
		return
	}

	var rating float64
	if len(reviews) > 0 {
		var sum float64
		for _, r := range reviews {
			sum += r.Rating
		}
		rating = sum / float64(len(reviews))
	}

	if err := u.productRepo.SetAggregates(ctx, productID, rating, len(reviews)); err != nil {
		u.logger.Error().Err(err).
			Str("product", productID.Hex()).
			Msg("failed to update product rating aggregates")
	}
}
