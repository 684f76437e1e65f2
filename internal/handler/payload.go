package handler

import (
	"github.com/brakwaku/iCenCookiesLLC/internal/model"
)

type registerRequest struct {
	Name     string        `json:"name"     validate:"required"`
	Email    string        `json:"email"    validate:"required,email"`
	Password string        `json:"password" validate:"required,min=6"`
	Address  model.Address `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

type sessionResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type updateUserRequest struct {
	Name    *string        `json:"name,omitempty"`
	Email   *string        `json:"email,omitempty"   validate:"omitempty,email"`
	Address *model.Address `json:"address,omitempty"`
	Role    *string        `json:"role,omitempty"    validate:"omitempty,oneof=admin customer"`
}

type createProductRequest struct {
	Name         string  `json:"name"         validate:"required"`
	ImageURL     string  `json:"imageUrl"     validate:"required"`
	CloudinaryID string  `json:"cloudinaryId"`
	Type         string  `json:"type"         validate:"omitempty,oneof=regular custom"`
	Category     string  `json:"category"`
	Description  string  `json:"description"  validate:"required"`
	Price        float64 `json:"price"        validate:"gte=0"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
}

type updateProductRequest struct {
	Name         *string  `json:"name,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	CloudinaryID *string  `json:"cloudinaryId,omitempty"`
	Type         *string  `json:"type,omitempty"         validate:"omitempty,oneof=regular custom"`
	Category     *string  `json:"category,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"        validate:"omitempty,gte=0"`
	CountInStock *int     `json:"countInStock,omitempty" validate:"omitempty,gte=0"`
}

// productResponse is a product with its reviews (and their authors)
// attached by the review loader.
type productResponse struct {
	*model.Product
	ProductReviews []model.ReviewWithUser `json:"productReviews"`
}

type createReviewRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title"     validate:"required,max=100"`
	Comment   string  `json:"comment"   validate:"required"`
	Rating    float64 `json:"rating"    validate:"required,min=1,max=10"`
}

type updateReviewRequest struct {
	Title   *string  `json:"title,omitempty"   validate:"omitempty,max=100"`
	Comment *string  `json:"comment,omitempty"`
	Rating  *float64 `json:"rating,omitempty"  validate:"omitempty,min=1,max=10"`
}

type createOrderRequest struct {
	OrderItems      []orderItemRequest `json:"orderItems"      validate:"required,min=1,dive"`
	ShippingAddress model.Address      `json:"shippingAddress"`
	TotalPrice      float64            `json:"totalPrice"      validate:"gte=0"`
}

type orderItemRequest struct {
	Product  string  `json:"product"  validate:"required"`
	Name     string  `json:"name"     validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price"    validate:"gte=0"`
	ImageURL string  `json:"imageUrl"`
}

type updateOrderRequest struct {
	ShippingAddress *model.Address       `json:"shippingAddress,omitempty"`
	PaymentResult   *model.PaymentResult `json:"paymentResult,omitempty"`
	IsPaid          *bool                `json:"isPaid,omitempty"`
	IsDelivered     *bool                `json:"isDelivered,omitempty"`
}

type createPreferencesRequest struct {
	MonthlyDelivery bool     `json:"monthlyDelivery"`
	DoNotAdd        []string `json:"doNotAdd"`
	Order           *string  `json:"order,omitempty"`
}

type updatePreferencesRequest struct {
	MonthlyDelivery *bool     `json:"monthlyDelivery,omitempty"`
	DoNotAdd        *[]string `json:"doNotAdd,omitempty"`
	Order           *string   `json:"order,omitempty"`
}

type paymentIntentRequest struct {
	Amount      int64  `json:"amount"      validate:"required,gt=0"`
	Currency    string `json:"currency"    validate:"required,len=3"`
	Description string `json:"description"`
}

type paymentIntentResponse struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"clientSecret"`
}
