package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Preferences holds a user's delivery preferences. A unique index on user
// guarantees at most one record per user. DoNotAdd lists ingredients the
// customer wants excluded from custom boxes.
type Preferences struct {
	ID              bson.ObjectID  `bson:"_id,omitempty"   json:"id"`
	User            bson.ObjectID  `bson:"user"            json:"user"`
	MonthlyDelivery bool           `bson:"monthlyDelivery" json:"monthlyDelivery"`
	DoNotAdd        []string       `bson:"doNotAdd"        json:"doNotAdd"`
	Order           *bson.ObjectID `bson:"order,omitempty" json:"order,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt"       json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt"       json:"updatedAt"`
}
