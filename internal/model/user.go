package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role values a user may hold. Authorization is a strict equality check,
// admin does not imply customer.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Address represents a delivery address.
type Address struct {
	Street     string `bson:"street"     json:"street"`
	City       string `bson:"city"       json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country"    json:"country"`
}

// User represents an account in the store. The password hash and the reset
// token pair are never serialized to JSON. ResetPasswordToken holds the
// sha256 hash of the bare token sent by email; it is set and cleared
// together with ResetPasswordExpire.
type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"                 json:"id"`
	Name                string        `bson:"name"                          json:"name"`
	Email               string        `bson:"email"                         json:"email"`
	Role                string        `bson:"role"                          json:"role"`
	Address             Address       `bson:"address"                       json:"address"`
	PasswordHash        string        `bson:"password"                      json:"-"`
	ResetPasswordToken  *string       `bson:"resetPasswordToken,omitempty"  json:"-"`
	ResetPasswordExpire *time.Time    `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt           time.Time     `bson:"createdAt"                     json:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt"                     json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
