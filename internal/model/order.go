package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OrderItem is a single line item of an order.
type OrderItem struct {
	Product  bson.ObjectID `bson:"product"  json:"product"`
	Name     string        `bson:"name"     json:"name"`
	Quantity int           `bson:"quantity" json:"quantity"`
	Price    float64       `bson:"price"    json:"price"`
	ImageURL string        `bson:"imageUrl" json:"imageUrl"`
}

// PaymentResult is the opaque outcome reported by the payment provider.
type PaymentResult struct {
	ID           string `bson:"id"           json:"id"`
	Status       string `bson:"status"       json:"status"`
	UpdateTime   string `bson:"updateTime"   json:"updateTime"`
	EmailAddress string `bson:"emailAddress" json:"emailAddress"`
}

// Order represents a user's order. Mutation and deletion are restricted to
// the owning user or an admin.
type Order struct {
	ID              bson.ObjectID  `bson:"_id,omitempty"         json:"id"`
	User            bson.ObjectID  `bson:"user"                  json:"user"`
	OrderItems      []OrderItem    `bson:"orderItems"            json:"orderItems"`
	ShippingAddress Address        `bson:"shippingAddress"       json:"shippingAddress"`
	PaymentResult   *PaymentResult `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	TotalPrice      float64        `bson:"totalPrice"            json:"totalPrice"`
	IsPaid          bool           `bson:"isPaid"                json:"isPaid"`
	PaidAt          *time.Time     `bson:"paidAt,omitempty"      json:"paidAt,omitempty"`
	IsDelivered     bool           `bson:"isDelivered"           json:"isDelivered"`
	DeliveredAt     *time.Time     `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt"             json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt"             json:"updatedAt"`
}
