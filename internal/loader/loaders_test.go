package loader_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/brakwaku/iCenCookiesLLC/internal/loader"
	"github.com/brakwaku/iCenCookiesLLC/internal/model"
)

type fakeProductSource struct {
	products []*model.Product
	queries  int32
}

func (f *fakeProductSource) ListByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.Product, error) {
	atomic.AddInt32(&f.queries, 1)

	want := make(map[bson.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []*model.Product
	for _, p := range f.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeReviewSource struct {
	reviews []*model.Review
	queries int32
}

func (f *fakeReviewSource) ListByProductIDs(_ context.Context, productIDs []bson.ObjectID) ([]*model.Review, error) {
	atomic.AddInt32(&f.queries, 1)

	want := make(map[bson.ObjectID]bool, len(productIDs))
	for _, id := range productIDs {
		want[id] = true
	}

	var out []*model.Review
	for _, r := range f.reviews {
		if want[r.Product] {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserSource struct {
	users   []*model.User
	queries int32
	lastIDs []bson.ObjectID
}

func (f *fakeUserSource) ListByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.User, error) {
	atomic.AddInt32(&f.queries, 1)
	f.lastIDs = append([]bson.ObjectID(nil), ids...)

	want := make(map[bson.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []*model.User
	for _, u := range f.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestReviewLoader_TwoQueriesPerBatch(t *testing.T) {
	alice := &model.User{ID: bson.NewObjectID(), Name: "Alice"}
	bob := &model.User{ID: bson.NewObjectID(), Name: "Bob"}

	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()
	p3 := bson.NewObjectID()

	reviews := &fakeReviewSource{reviews: []*model.Review{
		{ID: bson.NewObjectID(), Product: p1, User: alice.ID, Rating: 8},
		{ID: bson.NewObjectID(), Product: p1, User: bob.ID, Rating: 6},
		{ID: bson.NewObjectID(), Product: p2, User: alice.ID, Rating: 9},
	}}
	users := &fakeUserSource{users: []*model.User{alice, bob}}

	loaders := loader.NewLoaders(&fakeProductSource{}, reviews, users, loader.WithWait(time.Millisecond))

	got, err := loaders.Reviews.LoadMany(context.Background(), []bson.ObjectID{p1, p2, p3})
	if err != nil {
		t.Fatalf("LoadMany: %v", err)
	}

	if n := atomic.LoadInt32(&reviews.queries); n != 1 {
		t.Fatalf("expected 1 review query for the whole batch, got %d", n)
	}
	if n := atomic.LoadInt32(&users.queries); n != 1 {
		t.Fatalf("expected 1 user query for the whole batch, got %d", n)
	}
	if len(users.lastIDs) != 2 {
		t.Fatalf("expected deduplicated author ids, got %v", users.lastIDs)
	}

	if len(got[0]) != 2 {
		t.Fatalf("expected 2 reviews for first product, got %d", len(got[0]))
	}
	if got[0][0].Author == nil || got[0][0].Author.Name != "Alice" {
		t.Fatalf("expected first review author Alice, got %+v", got[0][0].Author)
	}
	if got[0][1].Author == nil || got[0][1].Author.Name != "Bob" {
		t.Fatalf("expected second review author Bob, got %+v", got[0][1].Author)
	}
	if len(got[1]) != 1 {
		t.Fatalf("expected 1 review for second product, got %d", len(got[1]))
	}

	// A product with no reviews resolves to an empty list, not an error.
	if len(got[2]) != 0 {
		t.Fatalf("expected no reviews for third product, got %d", len(got[2]))
	}
}

func TestProductLoader_ResolvesByID(t *testing.T) {
	p1 := &model.Product{ID: bson.NewObjectID(), Name: "Chocolate Chip"}
	p2 := &model.Product{ID: bson.NewObjectID(), Name: "Oatmeal Raisin"}
	source := &fakeProductSource{products: []*model.Product{p1, p2}}

	loaders := loader.NewLoaders(source, &fakeReviewSource{}, &fakeUserSource{}, loader.WithWait(time.Millisecond))

	got, err := loaders.Products.LoadMany(context.Background(), []bson.ObjectID{p2.ID, p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("LoadMany: %v", err)
	}

	if n := atomic.LoadInt32(&source.queries); n != 1 {
		t.Fatalf("expected 1 product query, got %d", n)
	}
	if got[0].Name != "Oatmeal Raisin" || got[1].Name != "Chocolate Chip" || got[2].Name != "Oatmeal Raisin" {
		t.Fatalf("results out of order: %q, %q, %q", got[0].Name, got[1].Name, got[2].Name)
	}

	missing, err := loaders.Products.Load(context.Background(), bson.NewObjectID())
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown product should resolve to nil, got %+v", missing)
	}
}

func TestFromContext(t *testing.T) {
	if l := loader.FromContext(context.Background()); l != nil {
		t.Fatalf("expected nil bundle on bare context, got %+v", l)
	}

	bundle := loader.NewLoaders(&fakeProductSource{}, &fakeReviewSource{}, &fakeUserSource{})
	ctx := loader.WithLoaders(context.Background(), bundle)
	if got := loader.FromContext(ctx); got != bundle {
		t.Fatal("expected the bundle set on the context")
	}
}
