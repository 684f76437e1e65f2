package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 10
)

// Review represents a user's review of a product. A compound unique index on
// (user, product) prevents more than one review per pair.
type Review struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string        `bson:"title"         json:"title"`
	Comment      string        `bson:"comment"       json:"comment"`
	Rating       float64       `bson:"rating"        json:"rating"`
	Product      bson.ObjectID `bson:"product"       json:"product"`
	User         bson.ObjectID `bson:"user"          json:"user"`
	IsSanctioned bool          `bson:"isSanctioned"  json:"isSanctioned"`
	CreatedAt    time.Time     `bson:"createdAt"     json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"     json:"updatedAt"`
}

// ReviewWithUser is a review with its owning user already resolved. The
// review loader returns these so product listings never trigger per-review
// user lookups.
type ReviewWithUser struct {
	Review `bson:",inline"`
	Author *User `bson:"-" json:"author,omitempty"`
}
