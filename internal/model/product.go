package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product type values.
const (
	ProductTypeRegular = "regular"
	ProductTypeCustom  = "custom"
)

// Product represents an item for sale. Rating and NumReviews are derived
// fields recomputed whenever the product's review set changes; Reviews holds
// the denormalized list of review ids, so NumReviews always equals
// len(Reviews).
type Product struct {
	ID           bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	User         bson.ObjectID   `bson:"user"          json:"user"`
	Name         string          `bson:"name"          json:"name"`
	ImageURL     string          `bson:"imageUrl"      json:"imageUrl"`
	CloudinaryID string          `bson:"cloudinaryId"  json:"cloudinaryId"`
	Type         string          `bson:"type"          json:"type"`
	Category     string          `bson:"category"      json:"category"`
	Description  string          `bson:"description"   json:"description"`
	Reviews      []bson.ObjectID `bson:"reviews"       json:"reviews"`
	Rating       float64         `bson:"rating"        json:"rating"`
	NumReviews   int             `bson:"numReviews"    json:"numReviews"`
	Price        float64         `bson:"price"         json:"price"`
	CountInStock int             `bson:"countInStock"  json:"countInStock"`
	CreatedAt    time.Time       `bson:"createdAt"     json:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt"     json:"updatedAt"`
}
