package handler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/auth"
	"github.com/brakwaku/iCenCookiesLLC/internal/config"
	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

// The stubs embed their repository interface so only the methods the routes
// under test reach need real implementations.

type stubUserRepo struct {
	repository.UserRepository
	mu    sync.Mutex
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (s *stubUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
			}
		}
	}

	user.ID = bson.NewObjectID()
	stored := *user
	s.users[user.ID.Hex()] = &stored
	return user, nil
}

func (s *stubUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := *u
	return &out, nil
}

func (s *stubUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) ListUsers(_ context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.User
	for _, u := range s.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubUserRepo) ListByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.User
	for _, id := range ids {
		if u, ok := s.users[id.Hex()]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubUserRepo) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// seed inserts a user with a real password hash so login works against it.
func (s *stubUserRepo) seed(t *testing.T, email, password, role string) *model.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash seed password: %v", err)
	}

	user, err := s.CreateUser(context.Background(), &model.User{
		Name:         "Seeded",
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

type stubProductRepo struct {
	repository.ProductRepository
	mu       sync.Mutex
	products map[string]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*model.Product)}
}

func (s *stubProductRepo) CreateProduct(_ context.Context, product *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = bson.NewObjectID()
	if product.Reviews == nil {
		product.Reviews = []bson.ObjectID{}
	}

	stored := *product
	s.products[product.ID.Hex()] = &stored
	return product, nil
}

func (s *stubProductRepo) GetProduct(_ context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := *p
	return &out, nil
}

func (s *stubProductRepo) ListProductIDs(_ context.Context) ([]bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []bson.ObjectID
	for _, p := range s.products {
		out = append(out, p.ID)
	}
	return out, nil
}

func (s *stubProductRepo) ListByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Product
	for _, id := range ids {
		if p, ok := s.products[id.Hex()]; ok {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubProductRepo) SetAggregates(_ context.Context, id bson.ObjectID, rating float64, numReviews int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Rating = rating
	p.NumReviews = numReviews
	return nil
}

func (s *stubProductRepo) PushReviewRef(_ context.Context, id bson.ObjectID, reviewID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Reviews = append(p.Reviews, reviewID)
	return nil
}

type stubReviewRepo struct {
	repository.ReviewRepository
	mu      sync.Mutex
	reviews map[string]*model.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*model.Review)}
}

func (s *stubReviewRepo) CreateReview(_ context.Context, review *model.Review) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reviews {
		if r.User == review.User && r.Product == review.Product {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
			}
		}
	}

	review.ID = bson.NewObjectID()
	stored := *review
	s.reviews[review.ID.Hex()] = &stored
	return review, nil
}

func (s *stubReviewRepo) ListByProduct(_ context.Context, productID bson.ObjectID) ([]*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Review
	for _, r := range s.reviews {
		if r.Product == productID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *stubReviewRepo) ListByProductIDs(_ context.Context, productIDs []bson.ObjectID) ([]*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := make(map[bson.ObjectID]bool, len(productIDs))
	for _, id := range productIDs {
		want[id] = true
	}

	var out []*model.Review
	for _, r := range s.reviews {
		if want[r.Product] {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

type stubOrderRepo struct{ repository.OrderRepository }

type stubPreferencesRepo struct{ repository.PreferencesRepository }

type noopMailer struct{}

func (noopMailer) Send(to, subject, body string) error { return nil }

type serverFixture struct {
	server   *Server
	users    *stubUserRepo
	products *stubProductRepo
	reviews  *stubReviewRepo
	codec    auth.Codec
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	logger := zerolog.Nop()
	users := newStubUserRepo()
	products := newStubProductRepo()
	reviews := newStubReviewRepo()
	codec := auth.NewCodec("test-secret", "icencookies", time.Hour)

	cfg := &config.Config{
		CookieName:   "token",
		JWTExpiresIn: time.Hour,
	}

	server := NewServer(
		cfg,
		&logger,
		codec,
		users,
		products,
		reviews,
		usecase.NewAuthUsecase(users, codec, noopMailer{}, 10*time.Minute, "https://shop.example/reset", &logger),
		usecase.NewUserUsecase(users),
		usecase.NewProductUsecase(products),
		usecase.NewReviewUsecase(reviews, products, &logger),
		usecase.NewOrderUsecase(stubOrderRepo{}),
		usecase.NewPreferencesUsecase(stubPreferencesRepo{}),
		nil,
	)

	return &serverFixture{
		server:   server,
		users:    users,
		products: products,
		reviews:  reviews,
		codec:    codec,
	}
}
