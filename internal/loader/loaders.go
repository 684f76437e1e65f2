package loader

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
)

// ProductSource is the slice of the product repository the product loader
// needs.
type ProductSource interface {
	ListByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Product, error)
}

// ReviewSource is the slice of the review repository the review loader needs.
type ReviewSource interface {
	ListByProductIDs(ctx context.Context, productIDs []bson.ObjectID) ([]*model.Review, error)
}

// UserSource resolves the reviewing users in the review loader's secondary
// batch step.
type UserSource interface {
	ListByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.User, error)
}

// Loaders bundles the per-request loaders. One bundle is constructed at
// request entry and discarded when the request completes; bundles are never
// shared between requests.
type Loaders struct {
	Products *Loader[bson.ObjectID, *model.Product]
	Reviews  *Loader[bson.ObjectID, []model.ReviewWithUser]
}

// NewLoaders builds a fresh loader bundle against the given sources.
func NewLoaders(products ProductSource, reviews ReviewSource, users UserSource, opts ...Option) *Loaders {
	return &Loaders{
		Products: New(productBatch(products), opts...),
		Reviews:  New(reviewBatch(reviews, users), opts...),
	}
}

// productBatch loads products by id in one $in query.
func productBatch(products ProductSource) BatchFunc[bson.ObjectID, *model.Product] {
	return func(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*model.Product, error) {
		found, err := products.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		byID := make(map[bson.ObjectID]*model.Product, len(found))
		for _, p := range found {
			byID[p.ID] = p
		}

		return byID, nil
	}
}

// reviewBatch loads, for each product id, that product's reviews with their
// authors resolved. It issues at most two store queries per batch no matter
// how many product ids were requested: one over reviews, one over the
// deduplicated set of reviewing users.
func reviewBatch(reviews ReviewSource, users UserSource) BatchFunc[bson.ObjectID, []model.ReviewWithUser] {
	return func(ctx context.Context, productIDs []bson.ObjectID) (map[bson.ObjectID][]model.ReviewWithUser, error) {
		found, err := reviews.ListByProductIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}

		seen := make(map[bson.ObjectID]bool)
		var userIDs []bson.ObjectID
		for _, r := range found {
			if !seen[r.User] {
				seen[r.User] = true
				userIDs = append(userIDs, r.User)
			}
		}

		var authors []*model.User
		if len(userIDs) > 0 {
			authors, err = users.ListByIDs(ctx, userIDs)
			if err != nil {
				return nil, err
			}
		}

		authorByID := make(map[bson.ObjectID]*model.User, len(authors))
		for _, u := range authors {
			authorByID[u.ID] = u
		}

		byProduct := make(map[bson.ObjectID][]model.ReviewWithUser)
		for _, r := range found {
			byProduct[r.Product] = append(byProduct[r.Product], model.ReviewWithUser{
				Review: *r,
				Author: authorByID[r.User],
			})
		}

		return byProduct, nil
	}
}

type ctxKey struct{}

// WithLoaders returns a context carrying the loader bundle.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request's loader bundle, or nil when the request
// was not routed through the loader middleware.
func FromContext(ctx context.Context) *Loaders {
	l, _ := ctx.Value(ctxKey{}).(*Loaders)
	return l
}
