package usecase_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brakwaku/iCenCookiesLLC/internal/model"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// duplicateKeyErr mimics the server-side unique index violation so the
// usecases' mongo.IsDuplicateKeyError checks see the real thing.
func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, duplicateKeyErr()
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	f.users[user.ID.Hex()] = &stored
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, id string, params repository.UpdateUserParams) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Email == *params.Email {
				return nil, duplicateKeyErr()
			}
		}
		u.Email = *params.Email
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Address != nil {
		u.Address = *params.Address
	}
	if params.Role != nil {
		u.Role = *params.Role
	}
	if params.PasswordHash != nil {
		u.PasswordHash = *params.PasswordHash
	}
	u.UpdatedAt = time.Now()

	out := *u
	return &out, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.users, id)
	return u, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.User
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeUserRepo) ListByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.User
	for _, id := range ids {
		if u, ok := f.users[id.Hex()]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, id string, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.ResetPasswordToken = &tokenHash
	u.ResetPasswordExpire = &expiresAt
	return nil
}

func (f *fakeUserRepo) ClearResetToken(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
	return nil
}

func (f *fakeUserRepo) GetUserByResetToken(_ context.Context, tokenHash string, now time.Time) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			out := *u
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) ConsumeResetToken(_ context.Context, id string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.PasswordHash = passwordHash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
	return nil
}

// fakeProductRepo is an in-memory repository.ProductRepository.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*model.Product

	aggregateErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*model.Product)}
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *model.Product) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product.ID = bson.NewObjectID()
	if product.Reviews == nil {
		product.Reviews = []bson.ObjectID{}
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	stored := *product
	f.products[product.ID.Hex()] = &stored
	return product, nil
}

func (f *fakeProductRepo) GetProduct(_ context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := *p
	return &out, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, id string, params repository.UpdateProductParams) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.ImageURL != nil {
		p.ImageURL = *params.ImageURL
	}
	if params.CloudinaryID != nil {
		p.CloudinaryID = *params.CloudinaryID
	}
	if params.Type != nil {
		p.Type = *params.Type
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.CountInStock != nil {
		p.CountInStock = *params.CountInStock
	}
	p.UpdatedAt = time.Now()

	out := *p
	return &out, nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.products, id)
	return p, nil
}

func (f *fakeProductRepo) ListProducts(_ context.Context) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Product
	for _, p := range f.products {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeProductRepo) ListProductIDs(_ context.Context) ([]bson.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []bson.ObjectID
	for _, p := range f.products {
		out = append(out, p.ID)
	}
	return out, nil
}

func (f *fakeProductRepo) ListByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Product
	for _, id := range ids {
		if p, ok := f.products[id.Hex()]; ok {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SetAggregates(_ context.Context, id bson.ObjectID, rating float64, numReviews int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.aggregateErr != nil {
		return f.aggregateErr
	}

	p, ok := f.products[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Rating = rating
	p.NumReviews = numReviews
	return nil
}

func (f *fakeProductRepo) PushReviewRef(_ context.Context, id bson.ObjectID, reviewID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Reviews = append(p.Reviews, reviewID)
	return nil
}

func (f *fakeProductRepo) PullReviewRef(_ context.Context, id bson.ObjectID, reviewID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}

	kept := p.Reviews[:0]
	for _, r := range p.Reviews {
		if r != reviewID {
			kept = append(kept, r)
		}
	}
	p.Reviews = kept
	return nil
}

// fakeReviewRepo is an in-memory repository.ReviewRepository enforcing the
// one-review-per-(user, product) unique index.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*model.Review
	creates int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*model.Review)}
}

func (f *fakeReviewRepo) CreateReview(_ context.Context, review *model.Review) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++

	for _, r := range f.reviews {
		if r.User == review.User && r.Product == review.Product {
			return nil, duplicateKeyErr()
		}
	}

	review.ID = bson.NewObjectID()
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	stored := *review
	f.reviews[review.ID.Hex()] = &stored
	return review, nil
}

func (f *fakeReviewRepo) GetReview(_ context.Context, id string) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := *r
	return &out, nil
}

func (f *fakeReviewRepo) UpdateReview(_ context.Context, id string, params repository.UpdateReviewParams) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Title != nil {
		r.Title = *params.Title
	}
	if params.Comment != nil {
		r.Comment = *params.Comment
	}
	if params.Rating != nil {
		r.Rating = *params.Rating
	}
	if params.IsSanctioned != nil {
		r.IsSanctioned = *params.IsSanctioned
	}
	r.UpdatedAt = time.Now()

	out := *r
	return &out, nil
}

func (f *fakeReviewRepo) DeleteReview(_ context.Context, id string) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.reviews, id)
	return r, nil
}

func (f *fakeReviewRepo) ListReviews(_ context.Context) ([]*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Review
	for _, r := range f.reviews {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeReviewRepo) ListByProduct(_ context.Context, productID bson.ObjectID) ([]*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Review
	for _, r := range f.reviews {
		if r.Product == productID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ListByProductIDs(_ context.Context, productIDs []bson.ObjectID) ([]*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	want := make(map[bson.ObjectID]bool, len(productIDs))
	for _, id := range productIDs {
		want[id] = true
	}

	var out []*model.Review
	for _, r := range f.reviews {
		if want[r.Product] {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeOrderRepo is an in-memory repository.OrderRepository.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*model.Order)}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *model.Order) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order.ID = bson.NewObjectID()
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := *order
	f.orders[order.ID.Hex()] = &stored
	return order, nil
}

func (f *fakeOrderRepo) GetOrder(_ context.Context, id string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := *o
	return &out, nil
}

func (f *fakeOrderRepo) UpdateOrder(_ context.Context, id string, params repository.UpdateOrderParams) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.ShippingAddress != nil {
		o.ShippingAddress = *params.ShippingAddress
	}
	if params.PaymentResult != nil {
		o.PaymentResult = params.PaymentResult
	}
	if params.IsPaid != nil {
		o.IsPaid = *params.IsPaid
	}
	if params.PaidAt != nil {
		o.PaidAt = params.PaidAt
	}
	if params.IsDelivered != nil {
		o.IsDelivered = *params.IsDelivered
	}
	if params.DeliveredAt != nil {
		o.DeliveredAt = params.DeliveredAt
	}
	o.UpdatedAt = time.Now()

	out := *o
	return &out, nil
}

func (f *fakeOrderRepo) DeleteOrder(_ context.Context, id string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.orders, id)
	return o, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context) ([]*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Order
	for _, o := range f.orders {
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID bson.ObjectID) ([]*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Order
	for _, o := range f.orders {
		if o.User == userID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakePreferencesRepo is an in-memory repository.PreferencesRepository
// enforcing the unique per-user index.
type fakePreferencesRepo struct {
	mu    sync.Mutex
	prefs map[string]*model.Preferences
}

func newFakePreferencesRepo() *fakePreferencesRepo {
	return &fakePreferencesRepo{prefs: make(map[string]*model.Preferences)}
}

func (f *fakePreferencesRepo) CreatePreferences(_ context.Context, prefs *model.Preferences) (*model.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.prefs {
		if p.User == prefs.User {
			return nil, duplicateKeyErr()
		}
	}

	prefs.ID = bson.NewObjectID()
	now := time.Now()
	prefs.CreatedAt = now
	prefs.UpdatedAt = now

	stored := *prefs
	f.prefs[prefs.ID.Hex()] = &stored
	return prefs, nil
}

func (f *fakePreferencesRepo) GetPreferencesByUser(_ context.Context, userID bson.ObjectID) (*model.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.prefs {
		if p.User == userID {
			out := *p
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePreferencesRepo) UpdatePreferences(_ context.Context, id string, params repository.UpdatePreferencesParams) (*model.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.prefs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.MonthlyDelivery != nil {
		p.MonthlyDelivery = *params.MonthlyDelivery
	}
	if params.DoNotAdd != nil {
		p.DoNotAdd = *params.DoNotAdd
	}
	if params.Order != nil {
		p.Order = params.Order
	}
	p.UpdatedAt = time.Now()

	out := *p
	return &out, nil
}

func (f *fakePreferencesRepo) DeletePreferences(_ context.Context, id string) (*model.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.prefs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.prefs, id)
	return p, nil
}

// fakeMailer records outbound emails and can be told to fail.
type fakeMailer struct {
	mu      sync.Mutex
	sendErr error
	sent    []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

var errStoreDown = errors.New("store down")
